package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "vendorapp:session:"

// RedisSessionRepository stores the session as plain string keys in Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (r *RedisSessionRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, sessionKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session key %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisSessionRepository) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, sessionKeyPrefix+key, value, 0).Err()
}

func (r *RedisSessionRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = sessionKeyPrefix + key
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// Clear removes every session key under the prefix.
func (r *RedisSessionRepository) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan session keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
