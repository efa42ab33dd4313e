package bootstrap

import (
	"context"
	"time"

	"examen-portal/internal/config"
	"examen-portal/internal/middleware"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// LoginLimiter picks the Redis-backed throttle when REDIS_URL is set and
// reachable, and the in-memory one otherwise. The returned client is nil
// unless Redis is in use; the caller closes it.
func LoginLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, *redis.Client) {
	if cfg.RedisURL != "" {
		rdb, err := NewRedis(ctx, cfg.RedisURL)
		if err == nil {
			log.Info().Msg("login throttle backed by redis")
			return middleware.NewRedisLimiter(rdb, cfg.LoginRateLimit, time.Minute), rdb
		}
		log.Warn().Err(err).Msg("redis unavailable, login throttle falls back to memory")
	}
	return middleware.NewMemoryLimiter(cfg.LoginRateLimit, time.Minute), nil
}
