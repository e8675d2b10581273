package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "crm:ratelimit:"

// RateLimiter counts requests per key in fixed windows
type RateLimiter interface {
	// Allow consumes one request for key and reports the requests left in the window
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int, err error)
}

// RedisRateLimiter shares windows between every API instance
type RedisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter creates a limiter backed by client
func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

// Allow increments the window counter and sets its expiry on first use
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	windowKey := fmt.Sprintf("%s%s:%d", rateLimitPrefix, key, time.Now().UnixNano()/int64(window))

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, limit, fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	if count > limit {
		return false, 0, nil
	}
	return true, limit - count, nil
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter keeps windows in process memory
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryRateLimiter creates an in-process limiter
func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow consumes one request for key
func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, period time.Duration) (bool, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.sweep(now)
		w = &window{resetAt: now.Add(period)}
		l.windows[key] = w
	}
	if w.count >= limit {
		return false, 0, nil
	}
	w.count++
	return true, limit - w.count, nil
}

// sweep drops expired windows. Callers hold mu.
func (l *MemoryRateLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
