package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"starwars-catalog/internal/shared/config"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/shared/response"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request from key fits its budget
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps a token bucket per client in process memory
type MemoryLimiter struct {
	config  config.RateLimitConfig
	clients map[string]*rate.Limiter
	mu      sync.Mutex
}

func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		config:  cfg,
		clients: make(map[string]*rate.Limiter),
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	limiter, exists := m.clients[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize)
		m.clients[key] = limiter
	}
	m.mu.Unlock()

	return limiter.Allow(), nil
}

// Cleanup drops idle clients every interval until ctx is done
func (m *MemoryLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *MemoryLimiter) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A full bucket has not been used recently
	for key, limiter := range m.clients {
		if limiter.TokensAt(now) >= float64(m.config.BurstSize) {
			delete(m.clients, key)
		}
	}
}

type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter counts requests per client in fixed one-second windows shared by every instance
type RedisLimiter struct {
	client counter
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client counter, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  int64(cfg.BurstSize),
		window: time.Second,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, l.now().Unix())

	count, err := l.client.Incr(ctx, windowKey).Result()
	if err != nil {
		return false, errors.WrapExternal("failed to increment rate limit counter", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, windowKey, 2*l.window).Err(); err != nil {
			return false, errors.WrapExternal("failed to expire rate limit counter", err)
		}
	}

	return count <= l.limit, nil
}

type RateLimiter struct {
	config   config.RateLimitConfig
	primary  Limiter
	fallback *MemoryLimiter
	logger   *slog.Logger
}

// NewRateLimiter uses Redis when a client is given and memory otherwise.
// Redis failures fall back to the in-memory limiter per request.
func NewRateLimiter(cfg config.RateLimitConfig, client *redis.Client, logger *slog.Logger) *RateLimiter {
	logger = logger.With("middleware", "rate_limit")

	fallback := NewMemoryLimiter(cfg)
	rl := &RateLimiter{
		config:   cfg,
		primary:  fallback,
		fallback: fallback,
		logger:   logger,
	}

	if client != nil {
		rl.primary = NewRedisLimiter(client, cfg)
		logger.Info("Rate limiter backed by Redis")
	} else {
		logger.Info("Rate limiter backed by memory")
	}

	return rl
}

// Run evicts idle in-memory clients until ctx is done
func (rl *RateLimiter) Run(ctx context.Context) {
	if !rl.config.Enabled {
		return
	}
	rl.fallback.Cleanup(ctx, time.Minute)
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	allowed, err := rl.primary.Allow(ctx, key)
	if err == nil {
		return allowed
	}

	rl.logger.Warn("Rate limiter backend failed, using memory", "error", err)
	allowed, _ = rl.fallback.Allow(ctx, key)
	return allowed
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip := getClientIP(r, rl.config.TrustProxy)

		logger := rl.logger.With(
			"client_ip", ip,
			"method", r.Method,
			"path", r.URL.Path,
		)

		if !rl.allow(r.Context(), ip) {
			w.Header().Set("Retry-After", "1")
			response.Error(w, r, logger, errors.RateLimited("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// X-Forwarded-For can be comma-separated; first entry is the client
			if i := strings.IndexByte(xff, ','); i != -1 {
				return strings.TrimSpace(xff[:i])
			}
			return xff
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
