// Package cache provides a small byte cache backed by Redis, with a no-op
// fallback for deployments that run without Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores opaque values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedis returns a Cache storing keys under prefix.
func NewRedis(client redis.Cmdable, prefix string) Cache {
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

type nop struct{}

// Nop never stores anything.
func Nop() Cache { return nop{} }

func (nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
