package redis

import (
	"context"
	"fmt"

	"github.com/ainexus/translation-service/config"
	goredis "github.com/go-redis/redis/v8"
)

// Init connects to Redis and verifies the connection. Returns nil when the
// hot cache is not configured.
func Init(ctx context.Context, cfg config.Config) (*goredis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr(),
		Username: cfg.RedisUser,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDb,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return client, nil
}
