package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_ZeroRateFloored(t *testing.T) {
	// A zero configured rate must not block every request forever.
	limiter := NewLimiter(0, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("expected floored rate to admit a request, got %v", err)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different target has its own bucket
	if err := limiter.Wait(ctx, "ollama"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("backend") {
		t.Error("expected first request to be allowed")
	}
	if limiter.Allow("backend") {
		t.Error("expected second immediate request to be throttled")
	}
	// Other targets are unaffected
	if !limiter.Allow("openai") {
		t.Error("expected fresh target to be allowed")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetRate("openai", 1000, 10)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow("openai") {
			allowed++
		}
	}
	if allowed != 5 {
		t.Errorf("expected 5 allowed after rate raise, got %d", allowed)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.WaitWithDelay(ctx, "openai", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	if time.Since(start) < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", time.Since(start))
	}
}
