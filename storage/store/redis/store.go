package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/scadhub/portal/core"
)

const keyPrefix = "portal:"

// Store is a redis-backed core.Store. Each collection maps to one hash keyed
// by record key.
type Store struct {
	client *redis.Client
}

var _ core.Store = (*Store)(nil)

// Open connects to redis with short timeouts.
func Open(addr string) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, collection, key string) ([]byte, error) {
	rec, err := s.client.HGet(ctx, keyPrefix+collection, key).Bytes()
	if err == redis.Nil {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis HGET %s %s", collection, key)
	}
	return rec, nil
}

func (s *Store) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	all, err := s.client.HGetAll(ctx, keyPrefix+collection).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "redis HGETALL %s", collection)
	}
	recs := make(map[string][]byte, len(all))
	for key, rec := range all {
		recs[key] = []byte(rec)
	}
	return recs, nil
}

func (s *Store) Put(ctx context.Context, collection, key string, record []byte) error {
	if err := s.client.HSet(ctx, keyPrefix+collection, key, record).Err(); err != nil {
		return errors.Wrapf(err, "redis HSET %s %s", collection, key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if err := s.client.HDel(ctx, keyPrefix+collection, key).Err(); err != nil {
		return errors.Wrapf(err, "redis HDEL %s %s", collection, key)
	}
	return nil
}

// Healthy verifies redis connectivity.
func (s *Store) Healthy(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx).Err(), "redis ping")
}

func (s *Store) Close() error { return s.client.Close() }
