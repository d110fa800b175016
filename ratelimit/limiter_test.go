package ratelimit

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryLimiterWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "user:1", 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !res.Allowed || res.Count != int64(i) {
			t.Fatalf("Allow #%d = %+v, want allowed with count %d", i, res, i)
		}
	}

	now = now.Add(20 * time.Second)
	res, _ := l.Allow(ctx, "user:1", 3, time.Minute)
	if res.Allowed {
		t.Fatal("fourth hit allowed")
	}
	if res.RetryAfter != 40*time.Second {
		t.Errorf("RetryAfter = %v, want 40s", res.RetryAfter)
	}

	// Other keys are independent.
	if res, _ := l.Allow(ctx, "user:2", 3, time.Minute); !res.Allowed {
		t.Error("user:2 should not share user:1's window")
	}

	now = now.Add(time.Minute)
	if res, _ := l.Allow(ctx, "user:1", 3, time.Minute); !res.Allowed || res.Count != 1 {
		t.Errorf("after window = %+v, want a fresh window", res)
	}
}

func TestMemoryLimiterReset(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter()
	l.Allow(ctx, "k", 1, time.Hour)
	if res, _ := l.Allow(ctx, "k", 1, time.Hour); res.Allowed {
		t.Fatal("second hit allowed with limit 1")
	}
	l.Reset(ctx, "k")
	if res, _ := l.Allow(ctx, "k", 1, time.Hour); !res.Allowed {
		t.Error("hit after Reset not allowed")
	}
}

func TestMemoryLimiterDropsExpiredWindows(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }

	for _, key := range []string{"chat:a", "chat:b", "signin:c"} {
		l.Allow(ctx, key, 5, time.Minute)
	}
	l.Allow(ctx, "issues:d", 5, 24*time.Hour)

	now = now.Add(2 * time.Minute)
	l.Allow(ctx, "chat:e", 5, time.Minute)

	if len(l.windows) != 2 {
		t.Fatalf("len(windows) = %d, want 2 (issues:d and chat:e)", len(l.windows))
	}
	if _, ok := l.windows["issues:d"]; !ok {
		t.Error("unexpired window was dropped")
	}
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisLimiterRepairsMissingTTL(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	prefix := "ratelimit-test-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	l := NewRedisLimiter(client, prefix)
	k := prefix + ":signin:x"
	t.Cleanup(func() { client.Del(ctx, k) })

	// A counter left behind without a TTL.
	client.Set(ctx, k, 7, 0)

	res, err := l.Allow(ctx, "signin:x", 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed || res.Count != 8 {
		t.Errorf("Allow = %+v, want blocked with count 8", res)
	}
	if res.RetryAfter <= 0 || res.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v, want within the window", res.RetryAfter)
	}
	if ttl := client.TTL(ctx, k).Val(); ttl <= 0 {
		t.Errorf("TTL = %v, want the key to expire", ttl)
	}
}

func TestRedisLimiterWindow(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	prefix := "ratelimit-test-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	l := NewRedisLimiter(client, prefix)
	t.Cleanup(func() { client.Del(ctx, prefix+":user:1") })

	for i := 1; i <= 3; i++ {
		if res, err := l.Allow(ctx, "user:1", 2, time.Minute); err != nil || res.Allowed != (i <= 2) {
			t.Fatalf("Allow #%d = %+v, %v", i, res, err)
		}
	}
	if err := l.Reset(ctx, "user:1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if res, _ := l.Allow(ctx, "user:1", 2, time.Minute); !res.Allowed || res.Count != 1 {
		t.Errorf("after Reset = %+v, want a fresh window", res)
	}
}
