// Package ratelimit provides client-side request pacing for callers that
// want to stay under the exchange's published request quotas.
//
// The SDK core never rate-limits on its own: MEXC rate-limit responses are
// surfaced as futures.RateLimitError and prevention is left to the caller.
// This package is the building block for that caller-side policy; the
// futures.Retrier accepts a RateLimiter and waits on it before each attempt.
//
// The current implementation wraps Uber's token bucket limiter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/ratelimit"
)

// Rate is a rate limit expressed as a number of operations per interval,
// e.g. {Limit: 20, Interval: 2 * time.Second} for MEXC's private order
// endpoints.
type Rate struct {
	// Limit is the maximum number of operations allowed within Interval.
	Limit int

	// Interval is the time window over which Limit applies.
	Interval time.Duration
}

// RateLimiter paces operations according to a configured Rate.
type RateLimiter interface {
	// Wait blocks until the next operation is permitted or the context is
	// cancelled, in which case it returns the context error.
	Wait(ctx context.Context) error

	// SetLimit replaces the rate configuration. It returns an error when
	// the rate is invalid (non-positive limit or interval).
	SetLimit(limit Rate) error
}

// uberLimiter implements RateLimiter using Uber's token bucket.
type uberLimiter struct {
	limiter ratelimit.Limiter
	rate    Rate
}

// NewTokenBucketLimiter creates a RateLimiter that spaces operations evenly
// across the configured interval. Rates below one operation per second are
// honored as-is, e.g. {Limit: 1, Interval: 2 * time.Second} permits one
// operation every two seconds.
func NewTokenBucketLimiter(rate Rate) (RateLimiter, error) {
	if rate.Limit <= 0 || rate.Interval <= 0 {
		return nil, fmt.Errorf("invalid rate limit: %+v", rate)
	}
	return &uberLimiter{
		limiter: ratelimit.New(rate.Limit, ratelimit.Per(rate.Interval)),
		rate:    rate,
	}, nil
}

// Wait implements the RateLimiter interface.
func (l *uberLimiter) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limit wait cancelled: %w", ctx.Err())
	default:
		l.limiter.Take()
		return nil
	}
}

// SetLimit implements the RateLimiter interface.
func (l *uberLimiter) SetLimit(rate Rate) error {
	if rate.Limit <= 0 || rate.Interval <= 0 {
		return fmt.Errorf("invalid rate limit: %+v", rate)
	}
	l.limiter = ratelimit.New(rate.Limit, ratelimit.Per(rate.Interval))
	l.rate = rate
	return nil
}
