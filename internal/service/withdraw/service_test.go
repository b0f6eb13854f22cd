package withdraw

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

type fakeClient struct {
	Client

	yearlyAmountsCalls int
}

func (f *fakeClient) YearlyAmounts(_ context.Context, _ int) (*[]YearlyAmount, error) {
	f.yearlyAmountsCalls++
	return &[]YearlyAmount{{Year: "2026", TotalAmount: 1500000}}, nil
}

func (f *fakeClient) RestoreAll(_ context.Context) (*bool, error) {
	ok := true
	return &ok, nil
}

type nopSink struct{}

func (nopSink) RecordUpstream(_, _, _ string, _ time.Duration) {}

func newTestService(t *testing.T) (*Service, *fakeClient, cache.Cache) {
	t.Helper()

	c, err := cache.New(&config.CacheConfig{
		Enabled:    true,
		Type:       config.CacheTypeMemory,
		MaxEntries: 1000,
		DefaultTTL: config.Duration(5 * time.Minute),
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

	client := &fakeClient{}
	return NewService(client, facade, config.NewTTLPolicy(config.DefaultCacheConfig().TTL)), client, c
}

func TestYearlyAmountsCaches(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	got, err := svc.YearlyAmounts(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1500000), got[0].TotalAmount)

	exists, err := c.Exists(ctx, "withdraw:yearly_amounts:year:2026")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.YearlyAmounts(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, client.yearlyAmountsCalls)
}

func TestRestoreAllPurgesWholeFamily(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()

	for _, key := range []string{
		"withdraw:find_by_id:id:3",
		"withdraw:find_all:page:1:size:20:search:",
		"withdraw:yearly_amounts:year:2026",
	} {
		require.NoError(t, c.Set(ctx, key, []byte(`{}`), time.Minute))
	}
	// Keys of other families are out of scope.
	require.NoError(t, c.Set(ctx, "card:find_by_id:id:3", []byte(`{}`), time.Minute))

	ok, err := svc.RestoreAll(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, key := range []string{
		"withdraw:find_by_id:id:3",
		"withdraw:find_all:page:1:size:20:search:",
		"withdraw:yearly_amounts:year:2026",
	} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %q must be purged", key)
	}

	exists, err := c.Exists(ctx, "card:find_by_id:id:3")
	require.NoError(t, err)
	assert.True(t, exists)
}
