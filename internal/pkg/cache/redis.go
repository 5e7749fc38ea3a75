package cache

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to addr, which may carry a redis:// or rediss://
// prefix. A failed ping is logged; callers treat the cache as optional.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	addr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis ping failed, calendar cache will miss until it recovers", "addr", addr, "error", err)
	}
	return client
}
