// Package server exposes the gateway's public HTTP API over gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/health"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability/metrics"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/ratelimit"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/card"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/merchant"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/topup"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/transaction"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/transfer"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/withdraw"
)

// Services groups the entity services served by the gateway.
type Services struct {
	Card        *card.Service
	Merchant    *merchant.Service
	Topup       *topup.Service
	Transaction *transaction.Service
	Transfer    *transfer.Service
	Withdraw    *withdraw.Service
}

// Options configures the HTTP server.
type Options struct {
	Config   *config.Config
	Logger   observability.Logger
	Services Services

	// Checker serves /healthz and /readyz. Optional.
	Checker *health.Checker

	// Limiter rate-limits API requests per client IP. Optional.
	Limiter *ratelimit.Limiter

	// Metrics records per-request HTTP metrics. Optional.
	Metrics *metrics.Metrics
}

// Server is the public HTTP listener.
type Server struct {
	engine   *gin.Engine
	server   *http.Server
	logger   observability.Logger
	cfg      config.ServerConfig
	stopOnce sync.Once
}

// New builds the server with its middleware chain and routes.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.ContextWithFallback = true

	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog(opts.Logger))
	if opts.Limiter != nil && opts.Config.RateLimit.Enabled {
		engine.Use(RateLimit(opts.Limiter))
	}
	if opts.Metrics != nil {
		engine.Use(HTTPMetrics(opts.Metrics))
	}

	s := &Server{
		engine: engine,
		logger: opts.Logger,
		cfg:    opts.Config.Server,
	}
	s.registerRoutes(opts)

	return s, nil
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the HTTP listener. It blocks until the server exits.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout.Duration(),
		WriteTimeout: s.cfg.WriteTimeout.Duration(),
	}

	s.logger.Info("http server listening",
		observability.String("host", s.cfg.Host),
		observability.Int("port", s.cfg.Port),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		if s.server != nil {
			err = s.server.Shutdown(ctx)
		}
	})
	return err
}
