package flowcache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"go-admin-portal/internal/config"
)

// NewRedisClient connects to the Redis instance described by cfg. It returns
// nil when the server is unreachable; callers should treat a nil client as
// "login flow disabled" rather than crashing.
func NewRedisClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
