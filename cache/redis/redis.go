// Package redis implements geodata.KeyValueCache on Redis, for cache
// sharing between processes. All keys are prefixed with "geodata:" to
// avoid collisions. The caller owns the Redis client lifecycle.
//
// Usage:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	c := rediscache.New(rdb, rediscache.WithTTL(time.Hour))
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minff/geodata"
)

var _ geodata.KeyValueCache = (*Cache)(nil)

const keyPrefix = "geodata:"

// Option configures the Cache.
type Option func(*Cache)

// WithTTL sets an expiry on every stored entry. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// Cache is a Redis-backed cache.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Redis-backed cache on an existing client.
func New(client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ping verifies the Redis connection is alive.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the stored value and whether the key was present.
func (c *Cache) Get(key string) ([]byte, bool) {
	value, err := c.client.Get(context.Background(), keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	return value, true
}

// Put stores a value under key, overwriting any previous value.
func (c *Cache) Put(key string, value []byte) error {
	if err := c.client.Set(context.Background(), keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: put %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	removed, err := c.client.Del(context.Background(), keyPrefix+key).Result()
	if err != nil {
		c.logger.Warn("cache delete failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return removed > 0
}

// Close is a no-op — the caller owns the Redis client lifecycle.
func (c *Cache) Close() error { return nil }
