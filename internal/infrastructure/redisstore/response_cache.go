package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// ResponseCache stores sonic-encoded values under a key prefix.
type ResponseCache struct {
	client redis.UniversalClient
	prefix string
}

func NewResponseCache(client redis.UniversalClient, prefix string) *ResponseCache {
	if prefix == "" {
		prefix = "samoscore:sportsdb:"
	}
	return &ResponseCache{client: client, prefix: prefix}
}

// Get decodes the value at key into dst. A missing key reports false.
func (c *ResponseCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *ResponseCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
