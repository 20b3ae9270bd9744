// Package redis backs the active-diner gauge and the readiness probe. It is
// not a cache: no relational row is ever stored here, only short-lived
// session-activity sets.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pizzahub/pizza-service/internal/pkg/config"
)

const defaultTimeout = 5 * time.Second

// Connect opens a client against the configured instance and validates
// connectivity with a ping, mirroring how the MySQL side fails fast at
// bootstrap instead of at first use.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
