package ai

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const modelCacheKey = "ollama:model"

// RedisModelCache stores the discovered model name in Redis with a short
// TTL so a burst of chat traffic doesn't hit /api/tags on every request.
type RedisModelCache struct {
	cli *redis.Client
	ttl time.Duration
}

func NewRedisModelCache(cli *redis.Client, ttl time.Duration) *RedisModelCache {
	return &RedisModelCache{cli: cli, ttl: ttl}
}

func (c *RedisModelCache) Get(ctx context.Context) (string, bool) {
	name, err := c.cli.Get(ctx, modelCacheKey).Result()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// Set is best effort; a cache write failure only means a lookup next time.
func (c *RedisModelCache) Set(ctx context.Context, name string) {
	_ = c.cli.Set(ctx, modelCacheKey, name, c.ttl).Err()
}
