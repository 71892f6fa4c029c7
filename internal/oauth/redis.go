package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares one access token between processes through Redis.
// Expiry is enforced by the Redis key TTL.
type RedisCache struct {
	client redis.UniversalClient
	key    string
}

// NewRedisCache returns a RedisCache storing the token under key.
// An empty key selects DefaultCacheKey.
func NewRedisCache(client redis.UniversalClient, key string) *RedisCache {
	if key == "" {
		key = DefaultCacheKey
	}
	return &RedisCache{client: client, key: key}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context) (AccessToken, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return AccessToken{}, false, nil
	}
	if err != nil {
		return AccessToken{}, false, fmt.Errorf("read token %s: %w", c.key, err)
	}

	var tok AccessToken
	if err := json.Unmarshal(data, &tok); err != nil {
		// A foreign or stale value under our key is treated as a miss.
		return AccessToken{}, false, nil
	}
	return tok, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, tok AccessToken, ttl time.Duration) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("write token %s: %w", c.key, err)
	}
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("delete token %s: %w", c.key, err)
	}
	return nil
}
