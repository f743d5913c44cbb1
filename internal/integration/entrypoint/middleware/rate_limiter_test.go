package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimiterWithConfig(client, "test:ratelimit", maxAttempts, window), mr
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := rl.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d blocked, want allowed", i+1)
		}
	}

	allowed, err := rl.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if allowed {
		t.Fatal("request over the limit was allowed")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatal("first client blocked on first request")
	}
	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); allowed {
		t.Fatal("first client allowed over the limit")
	}
	if allowed, _ := rl.Allow(ctx, "10.0.0.2"); !allowed {
		t.Fatal("second client blocked by first client's counter")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatal("first request blocked")
	}
	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); allowed {
		t.Fatal("second request allowed within window")
	}

	mr.FastForward(61 * time.Second)

	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatal("request blocked after window expired")
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	rl.Allow(ctx, "10.0.0.1")
	if err := rl.Reset(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatal("request blocked after reset")
	}
}
