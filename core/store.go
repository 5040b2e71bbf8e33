package core

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrRecordNotFound is returned by Store.Get when no record exists under (collection, key).
	ErrRecordNotFound = errors.New("record not found")
)

// Store is the generic persistent record store backing all portal data:
// a mapping from (collection, key) to an encoded record.
// Put has insert-or-replace semantics; there are no partial updates.
type Store interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	GetAll(ctx context.Context, collection string) (map[string][]byte, error)
	Put(ctx context.Context, collection, key string, record []byte) error
	Delete(ctx context.Context, collection, key string) error
}
