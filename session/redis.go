package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the session client.
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisStore is a Redis-backed [Persistence] backend for deployments where
// the client runs on shared or ephemeral workstations and the session record
// must outlive the local filesystem.
type RedisStore struct {
	redis redis.UniversalClient
	key   string
}

// NewRedisStore creates a [RedisStore] persisting under the given key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	return &RedisStore{
		redis: client,
		key:   key,
	}
}

// Load reads the persisted record. Returns [ErrNotFound] when the key is
// absent.
func (r *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := r.redis.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return data, nil
}

// Save overwrites the persisted record. No TTL is set: expiry is governed by
// the identity provider's token lifetimes, not by the store.
func (r *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := r.redis.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Clear deletes the persisted record.
func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.redis.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
