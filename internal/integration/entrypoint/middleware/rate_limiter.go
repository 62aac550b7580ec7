package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxRequests    = 100
	defaultWindowDuration = 15 * time.Minute
	redisKeyPrefix        = "spendsync:ratelimit:"
)

// WindowCounter counts hits per key in fixed windows. Hit returns the count
// including this hit and when the current window ends.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// RateLimiter limits requests per client IP in fixed windows.
type RateLimiter struct {
	counter        WindowCounter
	maxRequests    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiter keeps counters in process memory. Non-positive values fall
// back to 100 requests per 15 minutes.
func NewRateLimiter(maxRequests int, windowDuration time.Duration) *RateLimiter {
	rl := newRateLimiter(maxRequests, windowDuration)
	rl.counter = &memoryCounter{windows: make(map[string]*window), now: func() time.Time { return rl.now() }}
	return rl
}

// NewRedisRateLimiter shares counters between API replicas through Redis.
func NewRedisRateLimiter(client *redis.Client, maxRequests int, windowDuration time.Duration) *RateLimiter {
	rl := newRateLimiter(maxRequests, windowDuration)
	rl.counter = &redisCounter{client: client, now: func() time.Time { return rl.now() }}
	return rl
}

func newRateLimiter(maxRequests int, windowDuration time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		maxRequests:    maxRequests,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware rejects callers over the limit with 429. A counter failure lets
// the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		count, reset, err := rl.counter.Hit(c.Request.Context(), clientIP, rl.windowDuration)
		if err != nil {
			slog.Warn("Rate limit counter unavailable", "error", err, "client_ip", clientIP)
			c.Next()
			return
		}

		remaining := rl.maxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if count > rl.maxRequests {
			c.Header("Retry-After", strconv.Itoa(int(reset.Sub(rl.now()).Seconds())+1))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

type window struct {
	hits  int
	reset time.Time
}

type memoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	hits    int
}

func (m *memoryCounter) Hit(_ context.Context, key string, length time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(length)}
		m.windows[key] = w
	}
	w.hits++

	// Expired windows are swept every 1000 hits.
	if m.hits++; m.hits%1000 == 0 {
		for k, other := range m.windows {
			if !now.Before(other.reset) {
				delete(m.windows, k)
			}
		}
	}
	return w.hits, w.reset, nil
}

type redisCounter struct {
	client *redis.Client
	now    func() time.Time
}

func (r *redisCounter) Hit(ctx context.Context, key string, length time.Duration) (int, time.Time, error) {
	k := redisKeyPrefix + key

	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	// A negative TTL means the key was just created by INCR.
	remaining := ttl.Val()
	if remaining < 0 {
		if err := r.client.PExpire(ctx, k, length).Err(); err != nil {
			return 0, time.Time{}, err
		}
		remaining = length
	}
	return int(incr.Val()), r.now().Add(remaining), nil
}
