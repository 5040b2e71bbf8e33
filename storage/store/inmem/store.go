package inmemstore

import (
	"context"
	"sync"

	"github.com/scadhub/portal/core"
)

// Store is an in-memory core.Store, used in development and tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

var _ core.Store = (*Store)(nil)

func Open() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

func (s *Store) Get(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.collections[collection][key]; ok {
		cp := make([]byte, len(rec))
		copy(cp, rec)
		return cp, nil
	}
	return nil, core.ErrRecordNotFound
}

func (s *Store) GetAll(_ context.Context, collection string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make(map[string][]byte, len(s.collections[collection]))
	for key, rec := range s.collections[collection] {
		cp := make([]byte, len(rec))
		copy(cp, rec)
		recs[key] = cp
	}
	return recs, nil
}

func (s *Store) Put(_ context.Context, collection, key string, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string][]byte)
		s.collections[collection] = coll
	}
	cp := make([]byte, len(record))
	copy(cp, record)
	coll[key] = cp
	return nil
}

func (s *Store) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], key)
	return nil
}
