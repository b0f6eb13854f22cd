// Package ratelimit provides a token-bucket rate limiter keyed by client.
package ratelimit

import (
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

var _ io.Closer = (*Limiter)(nil)

// Limiter rate-limits requests per client key using token buckets.
// Each key gets its own bucket refilled at a fixed rate. Stale buckets
// are removed by a background cleanup goroutine; call Close when the
// limiter is no longer needed.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*clientBucket

	cleanupInterval time.Duration
	bucketTTL       time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once

	logger observability.Logger
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithCleanup overrides the cleanup interval and bucket TTL.
func WithCleanup(interval, ttl time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupInterval = interval
		l.bucketTTL = ttl
	}
}

// New creates a limiter allowing rps requests per second with the given
// burst per client key.
func New(rps float64, burst int, logger observability.Logger, opts ...Option) *Limiter {
	if logger == nil {
		logger = observability.NopLogger()
	}

	l := &Limiter{
		rps:             rate.Limit(rps),
		burst:           burst,
		buckets:         make(map[string]*clientBucket),
		cleanupInterval: 5 * time.Minute,
		bucketTTL:       10 * time.Minute,
		stopCleanup:     make(chan struct{}),
		logger:          logger,
	}
	for _, opt := range opts {
		opt(l)
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether the request identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

// Len returns the number of tracked client buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(l.bucketTTL)
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) cleanup(maxAge time.Duration) {
	now := time.Now()

	l.mu.Lock()
	removed := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > maxAge {
			delete(l.buckets, key)
			removed++
		}
	}
	l.mu.Unlock()

	if removed > 0 {
		l.logger.Debug("rate limiter buckets cleaned up",
			observability.Int("removed", removed))
	}
}

// Close stops the background cleanup goroutine. Safe to call multiple times.
func (l *Limiter) Close() error {
	l.cleanupOnce.Do(func() {
		close(l.stopCleanup)
	})
	return nil
}
