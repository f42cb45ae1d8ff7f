// File: services/intelligence/cache.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"pathlab/utils"

	"github.com/go-redis/redis/v8"
)

// RedisResultCache keeps recommendations in Redis. Errors degrade to a miss.
type RedisResultCache struct {
	client *redis.Client
}

func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client}
}

func (c *RedisResultCache) Get(ctx context.Context, key string) ([]string, bool) {
	data, err := c.client.Get(ctx, utils.AIRecommendPrefix+key).Result()
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, false
	}
	return ids, true
}

func (c *RedisResultCache) Set(ctx context.Context, key string, ids []string, ttl time.Duration) {
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, utils.AIRecommendPrefix+key, b, ttl).Err()
}
