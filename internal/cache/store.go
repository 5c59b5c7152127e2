package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"estately/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON cache over an optional Redis client.
// A Store with a nil client behaves as an always-empty cache.
type Store struct {
	rdb *redis.Client
}

// NewStore wraps rdb, which may be nil.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Client returns the underlying Redis client, possibly nil.
func (s *Store) Client() *redis.Client {
	if s == nil {
		return nil
	}
	return s.rdb
}

// Enabled reports whether a Redis client is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first and on a miss calls fetch, which must populate dest,
// then stores dest with ttl. Cache failures degrade to a fetch.
// The returned bool reports a cache hit.
func (s *Store) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) (bool, error) {
	found, err := s.GetJSON(ctx, key, dest)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}
	if found {
		return true, nil
	}

	if err := fetch(); err != nil {
		return false, err
	}

	if err := s.SetJSON(ctx, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return false, nil
}

// Invalidate deletes keys, ignoring failures.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

// Ping checks Redis connectivity. A disabled store is healthy.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Ping(ctx).Err()
}
