package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const tooManyLogins = "Demasiados intentos de inicio de sesión. Intenta nuevamente en un minuto."

// Limiter counts attempts per key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginRateLimiter limits POST /login per client IP. Limiter errors let
// the request through.
func LoginRateLimiter(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("login limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("login rate limit exceeded")
			c.Header("Retry-After", "60")
			c.String(http.StatusTooManyRequests, tooManyLogins)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ── in-memory ────────────────────────────────────────────────────────────────

type ipEntry struct {
	count     int
	windowEnd time.Time
}

// MemoryLimiter keeps counters in process memory. Expired entries are
// dropped once per window.
type MemoryLimiter struct {
	limit     int
	window    time.Duration
	now       func() time.Time
	mu        sync.Mutex
	entries   map[string]*ipEntry
	nextPurge time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*ipEntry),
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.After(m.nextPurge) {
		for k, e := range m.entries {
			if now.After(e.windowEnd) {
				delete(m.entries, k)
			}
		}
		m.nextPurge = now.Add(m.window)
	}

	entry, exists := m.entries[key]
	if !exists || now.After(entry.windowEnd) {
		entry = &ipEntry{windowEnd: now.Add(m.window)}
		m.entries[key] = entry
	}

	entry.count++
	return entry.count <= m.limit, nil
}

// ── redis ────────────────────────────────────────────────────────────────────

// RedisLimiter shares counters between server instances.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: "login_attempts:"}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key

	count, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err := r.rdb.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return count <= int64(r.limit), nil
}
