// Package circuitbreaker wraps sony/gobreaker for upstream service calls.
// Each upstream service gets its own breaker so a failing service cannot
// take down calls to the others.
package circuitbreaker

import (
	"errors"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

// ErrOpen is returned when the breaker rejects a call.
var ErrOpen = errors.New("circuit breaker open")

// Breaker protects calls to a single upstream service.
type Breaker struct {
	cb     *gobreaker.CircuitBreaker
	logger observability.Logger
}

// New creates a breaker for the named upstream service.
func New(name string, cfg *config.BreakerConfig, logger observability.Logger) *Breaker {
	if cfg == nil {
		c := config.DefaultConfig().Upstream.Breaker
		cfg = &c
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval.Duration(),
		Timeout:     cfg.Timeout.Duration(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				observability.String("service", name),
				observability.String("from", from.String()),
				observability.String("to", to.String()),
			)
		},
	}

	return &Breaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

// Execute runs fn under breaker protection. When the breaker is open the
// call is rejected with ErrOpen without invoking fn.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Registry holds one breaker per upstream service.
type Registry struct {
	cfg    *config.BreakerConfig
	logger observability.Logger

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewRegistry creates a breaker registry with shared configuration.
func NewRegistry(cfg *config.BreakerConfig, logger observability.Logger) *Registry {
	return &Registry{
		cfg:      cfg,
		logger:   logger,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for the named service, creating it on first use.
func (r *Registry) Get(name string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[name]; ok {
		return b
	}
	b := New(name, r.cfg, r.logger)
	r.breakers[name] = b
	return b
}
