package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/circuitbreaker"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/health"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability/metrics"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability/tracing"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/ratelimit"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/server"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/card"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/merchant"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/topup"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/transaction"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/transfer"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/withdraw"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const version = "1.0.0"

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracing.SetupPropagators()

	// Without a started provider the global tracer is a no-op, so spans
	// cost nothing when tracing is disabled.
	upstreamTracer := otel.GetTracerProvider().Tracer("payment-gateway/upstream")
	if cfg.Tracing.Enabled {
		tracer, err := tracing.NewProvider(&tracing.Config{
			ServiceName:    "payment-gateway",
			ServiceVersion: version,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRate:     cfg.Tracing.SampleRate,
		}, observability.ZapFrom(logger))
		if err != nil {
			return fmt.Errorf("create tracing provider: %w", err)
		}
		if err := tracer.Start(ctx); err != nil {
			return fmt.Errorf("start tracing provider: %w", err)
		}
		defer func() {
			if err := tracer.Stop(context.Background()); err != nil {
				logger.Warn("tracing provider shutdown failed", observability.Error(err))
			}
		}()
		upstreamTracer = tracer.Tracer("payment-gateway/upstream")
	}

	m := metrics.NewMetrics("gateway")
	m.InitVecMetrics(upstream.Classes())

	cacheEngine, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	defer func() {
		_ = cacheEngine.Close()
	}()

	cacheMetrics := cache.GetCacheMetrics()
	cacheMetrics.MustRegister(m.Registry())
	cacheMetrics.Init()

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(&metrics.ServerConfig{
			Port:         cfg.Metrics.Port,
			Path:         cfg.Metrics.Path,
			ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
			WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		}, m, observability.ZapFrom(logger))

		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error("metrics server failed", observability.Error(err))
			}
		}()
	}

	conns, err := upstream.Dial(&cfg.Upstream, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = conns.Close()
	}()

	var breakers *circuitbreaker.Registry
	if cfg.Upstream.Breaker.Enabled {
		breakers = circuitbreaker.NewRegistry(&cfg.Upstream.Breaker, logger)
	}

	facade, err := upstream.NewFacade(upstream.Options{
		Cache:       cacheEngine,
		Tracer:      upstreamTracer,
		Sink:        m,
		Breakers:    breakers,
		Logger:      logger,
		CallTimeout: cfg.Upstream.CallTimeout.Duration(),
	})
	if err != nil {
		return err
	}

	ttl := config.NewTTLPolicy(cfg.Cache.TTL)
	services := server.Services{
		Card:        card.NewService(card.NewClient(conns.Get("card")), facade, ttl),
		Merchant:    merchant.NewService(merchant.NewClient(conns.Get("merchant")), facade, ttl),
		Topup:       topup.NewService(topup.NewClient(conns.Get("topup")), facade, ttl),
		Transaction: transaction.NewService(transaction.NewClient(conns.Get("transaction")), facade, ttl),
		Transfer:    transfer.NewService(transfer.NewClient(conns.Get("transfer")), facade, ttl),
		Withdraw:    withdraw.NewService(withdraw.NewClient(conns.Get("withdraw")), facade, ttl),
	}

	checker := health.NewChecker(version)
	checker.RegisterCheck("cache", health.CacheCheck(cacheEngine))
	for _, name := range []string{"card", "merchant", "topup", "transaction", "transfer", "withdraw"} {
		checker.RegisterCheck("upstream:"+name, health.UpstreamCheck(conns.Get(name)))
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
		defer func() {
			_ = limiter.Close()
		}()
	}

	srv, err := server.New(server.Options{
		Config:   cfg,
		Logger:   logger,
		Services: services,
		Checker:  checker,
		Limiter:  limiter,
		Metrics:  m,
	})
	if err != nil {
		return err
	}

	watcher, err := config.NewWatcher(configPath,
		func(newCfg *config.Config) {
			// Cache TTLs apply immediately; everything else needs a restart.
			ttl.Store(newCfg.Cache.TTL)
			logger.Info("configuration file reloaded",
				observability.String("path", configPath))
		},
		func(err error) {
			logger.Warn("configuration reload failed", observability.Error(err))
		},
	)
	if err != nil {
		logger.Warn("configuration watcher unavailable", observability.Error(err))
	} else {
		defer func() {
			_ = watcher.Stop()
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("gateway started", observability.String("version", version))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", observability.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", observability.Error(err))
		}
	}

	logger.Info("gateway stopped")
	return nil
}
