package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/health"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/ratelimit"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/card"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

type fakeCardClient struct {
	card.Client

	findByIDErr error
}

func (f *fakeCardClient) FindByID(_ context.Context, id int) (*card.Card, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	return &card.Card{ID: id, UserID: 7, CardType: "debit"}, nil
}

type nopSink struct{}

func (nopSink) RecordUpstream(_, _, _ string, _ time.Duration) {}

func newTestServer(t *testing.T, client card.Client, mutate func(*config.Config)) *Server {
	t.Helper()

	c, err := cache.New(&config.CacheConfig{
		Enabled:    true,
		Type:       config.CacheTypeMemory,
		MaxEntries: 100,
		DefaultTTL: config.Duration(time.Minute),
	}, observability.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
	})

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(tracetest.NewInMemoryExporter()),
	)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	facade, err := upstream.NewFacade(upstream.Options{
		Cache:  c,
		Tracer: tp.Tracer("test"),
		Sink:   nopSink{},
		Logger: observability.NopLogger(),
	})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	opts := Options{
		Config: cfg,
		Logger: observability.NopLogger(),
		Services: Services{
			Card: card.NewService(client, facade, config.NewTTLPolicy(cfg.Cache.TTL)),
		},
		Checker: health.NewChecker("test"),
	}
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, observability.NopLogger())
		t.Cleanup(func() {
			_ = limiter.Close()
		})
		opts.Limiter = limiter
	}

	srv, err := New(opts)
	require.NoError(t, err)
	return srv
}

func TestFindCardByID(t *testing.T) {
	srv := newTestServer(t, &fakeCardClient{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cards/42", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"message": "card fetched",
		"data": {
			"id": 42,
			"user_id": 7,
			"card_number": "",
			"card_type": "debit",
			"expire_date": "",
			"cvv": "",
			"card_provider": "",
			"created_at": "",
			"updated_at": ""
		}
	}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestUpstreamNotFoundRendersAs404(t *testing.T) {
	client := &fakeCardClient{
		findByIDErr: status.Error(codes.NotFound, "card with id 42 not found"),
	}
	srv := newTestServer(t, client, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cards/42", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"card with id 42 not found"}`, rec.Body.String())
}

func TestInvalidIDRendersAs400(t *testing.T) {
	srv := newTestServer(t, &fakeCardClient{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cards/not-a-number", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"invalid id parameter"}`, rec.Body.String())
}

func TestRateLimitReturns429(t *testing.T) {
	srv := newTestServer(t, &fakeCardClient{}, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RPS = 1
		cfg.RateLimit.Burst = 1
	})

	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/cards/42", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/cards/42", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"status":"error","message":"rate limit exceeded"}`, second.Body.String())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &fakeCardClient{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestReadyzReflectsChecks(t *testing.T) {
	checker := health.NewChecker("test")
	checker.RegisterCheck("upstream", func(_ context.Context) health.Check {
		return health.Check{Status: health.StatusUnhealthy, Message: "TRANSIENT_FAILURE"}
	})

	srv, err := New(Options{
		Config:  config.DefaultConfig(),
		Logger:  observability.NopLogger(),
		Checker: checker,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
}
