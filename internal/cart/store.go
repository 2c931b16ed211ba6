package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store persists carts across requests, keyed by session id. Writes
// are best-effort: the cart a shopper sees always lives in the request
// that mutated it, and a lost write only costs the saved copy.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Load returns the stored cart for the session, or a fresh empty cart
// when none exists yet.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	val, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.rdb.Set(ctx, cartKey(sessionID), data, s.ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, cartKey(sessionID)).Err()
}
