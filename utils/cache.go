// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"pathlab/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient serves booking sessions, the local fallback store and AI results.
	CacheClient *redis.Client
	// AuthCacheClient holds admin session keys.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping (db %d): %w", db, err)
	}
	return client, nil
}

// InitRedis connects the cache and auth clients.
func InitRedis() error {
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if AuthCacheClient, err = newRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		return err
	}
	return nil
}

// GetCacheClient returns the generic cache client, or nil when Redis was never initialised.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for admin sessions.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// CloseRedis releases both clients.
func CloseRedis() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}

// RedisPinger adapts a redis client to the health monitor.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
