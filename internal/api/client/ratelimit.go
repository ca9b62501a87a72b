package client

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing requests with a token bucket so a burst of
// keystrokes across several widgets cannot flood the application server.
type RateLimiter struct {
	limiter *rate.Limiter
	calls   atomic.Int64
}

// NewRateLimiter creates a rate limiter with the given per-second rate and
// burst size.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until the rate limiter allows the call, or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	r.calls.Add(1)
	return nil
}

// Count returns the number of calls admitted so far.
func (r *RateLimiter) Count() int64 {
	return r.calls.Load()
}
