// Package cache keeps short-lived copies of read-heavy back-office views
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cabanas-backoffice/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	KeyCabins    = "cabanas:cabins"
	KeyDashboard = "cabanas:dashboard"
)

// ErrMiss is returned by Get when the key is absent
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and checks the connection
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewWithClient(client, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		logger.ExternalServiceResult("redis", "GET", err, "key", key)
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.ExternalServiceResult("redis", "SET", err, "key", key)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.ExternalServiceResult("redis", "DEL", err, "keys", keys)
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

type noopCache struct{}

// NewNoopCache always misses. Used when Redis is not configured.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string, dest any) error  { return ErrMiss }
func (noopCache) Set(ctx context.Context, key string, value any) error { return nil }
func (noopCache) Delete(ctx context.Context, keys ...string) error     { return nil }
