package pgstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS record (
    collection TEXT  NOT NULL,
    key        TEXT  NOT NULL,
    data       JSONB NOT NULL,
    PRIMARY KEY (collection, key)
);`

// Store is a postgres-backed core.Store holding every collection in a single
// generic record table.
type Store struct {
	db *sqlx.DB
}

var _ core.Store = (*Store)(nil)

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return &Store{db: db}, nil
}

// Migrate ensures the record table exists.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "ensuring record table")
}

func (s *Store) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var rec []byte
	err := s.db.GetContext(ctx, &rec,
		`SELECT data FROM record WHERE collection = $1 AND key = $2`, collection, key)
	if err == sql.ErrNoRows {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "selecting %s/%s", collection, key)
	}
	return rec, nil
}

func (s *Store) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	var rows []struct {
		Key  string `db:"key"`
		Data []byte `db:"data"`
	}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT key, data FROM record WHERE collection = $1`, collection)
	if err != nil {
		return nil, errors.Wrapf(err, "selecting collection %s", collection)
	}
	recs := make(map[string][]byte, len(rows))
	for _, row := range rows {
		recs[row.Key] = row.Data
	}
	return recs, nil
}

func (s *Store) Put(ctx context.Context, collection, key string, record []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO record (collection, key, data) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, key) DO UPDATE SET data = EXCLUDED.data`,
		collection, key, record)
	return errors.Wrapf(err, "upserting %s/%s", collection, key)
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM record WHERE collection = $1 AND key = $2`, collection, key)
	return errors.Wrapf(err, "deleting %s/%s", collection, key)
}

func (s *Store) Close() error { return s.db.Close() }
