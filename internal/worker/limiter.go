package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter rate-limits calls per named target (an LLM provider or the
// FinShare backend), so a large batch run does not burn through API quota.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with a shared default rate. A non-positive
// rate would make every Wait block until its context expires, so both knobs
// are floored to 1.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the target admits another request or ctx is done
func (l *Limiter) Wait(ctx context.Context, target string) error {
	return l.getLimiter(target).Wait(ctx)
}

// Allow reports whether a request is admissible without waiting
func (l *Limiter) Allow(target string) bool {
	return l.getLimiter(target).Allow()
}

func (l *Limiter) getLimiter(target string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[target]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[target]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[target] = limiter

	return limiter
}

// SetRate overrides the rate for a specific target
func (l *Limiter) SetRate(target string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[target] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// WaitWithDelay waits for admission and then an additional fixed delay
func (l *Limiter) WaitWithDelay(ctx context.Context, target string, delay time.Duration) error {
	if err := l.Wait(ctx, target); err != nil {
		return err
	}

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil
}
