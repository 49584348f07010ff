package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tianya/internal/logger"
)

// keyPrefix namespaces client keys on shared redis instances.
const keyPrefix = "tianya:"

// RedisStore is a Store backed by a redis server, for setups where the client
// state lives next to other backend state instead of on the device.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis server at addr and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client}, nil
}

// Get returns the value for key, reporting absence through ok.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	logger.StoreOperation("redis", "get", key)

	value, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key with no expiry.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	logger.StoreOperation("redis", "set", key)

	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	logger.StoreOperation("redis", "delete", key)

	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
