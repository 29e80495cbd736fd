package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore revokes session tokens by their jti until their natural
// expiry. A nil Redis client disables revocation tracking: logout then relies
// on the cookie clear alone, which is acceptable for a single-browser flow.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore returns a SessionStore backed by the given client.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func revocationKey(jti string) string {
	return "session:revoked:" + jti
}

// Revoke marks the token id as revoked for the given ttl.
// Revoking an already-revoked token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		// Token already expired on its own.
		return nil
	}
	return s.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked. Redis errors are
// swallowed: an unreachable store must not lock every user out.
func (s *SessionStore) IsRevoked(ctx context.Context, jti string) bool {
	if s.rdb == nil || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, revocationKey(jti)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		// Treat store failures as "not revoked" rather than locking
		// every user out.
		return false
	}
	return n > 0
}
