// Package retry runs a function with capped exponential backoff.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Policy bounds the retry loop. Zero fields fall back to the defaults
// below, so the zero Policy is usable.
type Policy struct {
	Attempts int           // retries after the first call
	Initial  time.Duration // backoff before the first retry
	Max      time.Duration // backoff ceiling
	Jitter   float64       // random fraction added to each backoff, 0..1
}

const (
	defaultAttempts = 3
	defaultInitial  = 100 * time.Millisecond
	defaultMax      = 2 * time.Second
	defaultJitter   = 0.25
)

func (p Policy) normalized() Policy {
	if p.Attempts <= 0 {
		p.Attempts = defaultAttempts
	}
	if p.Initial <= 0 {
		p.Initial = defaultInitial
	}
	if p.Max <= 0 {
		p.Max = defaultMax
	}
	if p.Jitter <= 0 {
		p.Jitter = defaultJitter
	} else if p.Jitter > 1 {
		p.Jitter = 1
	}
	return p
}

type options struct {
	retryIf   func(error) bool
	onAttempt func(attempt int, err error, wait time.Duration)
}

// Option tweaks the retry loop.
type Option func(*options)

// RetryIf limits which errors are retried. Without it every error is.
func RetryIf(fn func(error) bool) Option {
	return func(o *options) { o.retryIf = fn }
}

// OnAttempt is invoked before each backoff sleep, mainly for logging.
func OnAttempt(fn func(attempt int, err error, wait time.Duration)) Option {
	return func(o *options) { o.onAttempt = fn }
}

// Do calls fn until it succeeds, the policy is exhausted, or ctx is
// done. The last error wins; a non-retryable error returns immediately.
func Do(ctx context.Context, p Policy, fn func() error, opts ...Option) error {
	p = p.normalized()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var lastErr error
	for attempt := 0; attempt <= p.Attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if o.retryIf != nil && !o.retryIf(lastErr) {
			return lastErr
		}
		if attempt == p.Attempts {
			break
		}

		wait := backoff(attempt, p)
		if o.onAttempt != nil {
			o.onAttempt(attempt+1, lastErr, wait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

func backoff(attempt int, p Policy) time.Duration {
	d := float64(p.Initial) * math.Pow(2, float64(attempt))
	d += d * p.Jitter * rand.Float64()
	if d > float64(p.Max) {
		d = float64(p.Max)
	}
	return time.Duration(d)
}
