package token

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qrattendance/internal/store"
)

const redisKeyPrefix = "qr:token:"

// RedisStore persists tokens in redis, letting key TTLs do the expiry work.
// No sweeper is needed with this backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a token store over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put stores the token with a TTL matching its remaining validity.
func (s *RedisStore) Put(ctx context.Context, tok Token) error {
	ttl := time.Until(tok.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token already expired at %s", tok.ExpiresAt)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+tok.Value, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

// GetValid fetches a live token. Redis expiry removes stale keys, but the
// ExpiresAt check is repeated here so validity never depends on eviction lag.
func (s *RedisStore) GetValid(ctx context.Context, value string) (Token, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+value).Bytes()
	if err == redis.Nil {
		return Token{}, ErrNotFound
	}
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, err
	}
	if !time.Now().Before(tok.ExpiresAt) {
		return Token{}, ErrNotFound
	}
	return tok, nil
}

// Invalidate flags the token used, keeping the original TTL.
func (s *RedisStore) Invalidate(ctx context.Context, value, usedBy string) error {
	key := redisKeyPrefix + value
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return err
	}
	if tok.Used {
		return nil
	}
	now := time.Now().UTC()
	tok.Used = true
	tok.UsedBy = usedBy
	tok.UsedAt = &now
	updated, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, updated, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}
