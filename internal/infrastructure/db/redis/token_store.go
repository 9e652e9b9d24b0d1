package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

const defaultTokenKey = "session:token"

// TokenStore persists the opaque session token in Redis. The token content
// is never inspected here; validation is the auth service's job.
type TokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client. The
// token expires with ttl so an abandoned session cannot outlive its JWT.
func NewTokenStore(client *redis.Client, key string, ttl time.Duration) *TokenStore {
	if key == "" {
		key = defaultTokenKey
	}
	return &TokenStore{client: client, key: key, ttl: ttl}
}

// Save persists the token, replacing any existing value.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save token: %v", domain.ErrTokenStorage, err)
	}
	return nil
}

// Clear removes the stored token. Deleting an absent key is a no-op in
// Redis, which matches the port contract.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: clear token: %v", domain.ErrTokenStorage, err)
	}
	return nil
}

// Get returns the stored token. A missing key is a normal absent result.
func (s *TokenStore) Get(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get token: %v", domain.ErrTokenStorage, err)
	}
	return token, true, nil
}
