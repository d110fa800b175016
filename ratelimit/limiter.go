// Package ratelimit implements fixed-window counters.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result describes one counted hit.
type Result struct {
	Allowed    bool
	Count      int64
	Limit      int64
	RetryAfter time.Duration
}

// Limiter counts hits per key inside a window that starts at the first hit.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (Result, error)
	Reset(ctx context.Context, key string) error
}

// RedisLimiter keeps counters in Redis with INCR and a TTL set when the
// window opens.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

func (l *RedisLimiter) key(key string) string {
	return l.prefix + ":" + key
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (Result, error) {
	k := l.key(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to increment counter: %w", err)
	}
	count, remaining := incr.Val(), ttl.Val()

	// A counter without a TTL is either new or lost its EXPIRE earlier;
	// either way it gets one now so it cannot block the key forever.
	if remaining < 0 {
		if err := l.client.Expire(ctx, k, window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set TTL: %w", err)
		}
		remaining = window
	}

	result := Result{Allowed: count <= limit, Count: count, Limit: limit}
	if !result.Allowed {
		result.RetryAfter = remaining
	}
	return result, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

type window struct {
	count   int64
	resetAt time.Time
}

// sweepInterval is how often MemoryLimiter drops expired windows.
const sweepInterval = time.Minute

// MemoryLimiter is a process-local Limiter.
type MemoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window), now: time.Now}
}

// sweep deletes expired windows. Callers hold l.mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
	l.nextSweep = now.Add(sweepInterval)
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int64, d time.Duration) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		l.windows[key] = w
	}
	w.count++

	result := Result{Allowed: w.count <= limit, Count: w.count, Limit: limit}
	if !result.Allowed {
		result.RetryAfter = w.resetAt.Sub(now)
	}
	return result, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
	return nil
}
