package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"estately/internal/middleware"
)

const (
	UserKeyPrefix       = "user:%d"
	SearchKeyPrefix     = "search:v%d:%s"
	SearchGenerationKey = "search:generation"
	RevokedTokenPrefix  = "jwt:revoked:%s"
)

const (
	UserTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// SearchKey derives the cache key for a normalized search fingerprint.
// generation scopes the key so that bumping it orphans every older entry.
func SearchKey(generation int64, fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return fmt.Sprintf(SearchKeyPrefix, generation, hex.EncodeToString(sum[:12]))
}

func (s *Store) InvalidateUser(ctx context.Context, userID uint) {
	s.Invalidate(ctx, UserKey(userID))
}

// SearchGeneration returns the current search cache generation, 0 when unset or unavailable.
func (s *Store) SearchGeneration(ctx context.Context) int64 {
	if !s.Enabled() {
		return 0
	}
	gen, err := s.rdb.Get(ctx, SearchGenerationKey).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// BumpSearchGeneration invalidates every cached search page at once.
// Old entries are left to expire by TTL.
func (s *Store) BumpSearchGeneration(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	// A failed bump must never lower the generation.
	if err := s.rdb.Incr(ctx, SearchGenerationKey).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "search generation bump failed", "key", SearchGenerationKey, "error", err)
	}
}

func RevokedTokenKey(jti string) string {
	return fmt.Sprintf(RevokedTokenPrefix, jti)
}

// RevokeToken blacklists jti until the token would have expired anyway.
func (s *Store) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, RevokedTokenKey(jti), 1, ttl).Err()
}

// IsTokenRevoked reports whether jti was revoked. Lookup failures count as not revoked.
func (s *Store) IsTokenRevoked(ctx context.Context, jti string) bool {
	if !s.Enabled() || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, RevokedTokenKey(jti)).Result()
	return err == nil && n > 0
}
