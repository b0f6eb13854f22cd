package transaction

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

	findByMerchantIDCalls int
	monthlyAmountsCalls   int
}

func (f *fakeClient) FindByMerchantID(_ context.Context, merchantID int) (*[]Transaction, error) {
	f.findByMerchantIDCalls++
	return &[]Transaction{{ID: 1, MerchantID: merchantID, Amount: 120000, PaymentMethod: "credit_card"}}, nil
}

func (f *fakeClient) MonthlyAmounts(_ context.Context, _ int) (*[]MonthlyAmount, error) {
	f.monthlyAmountsCalls++
	return &[]MonthlyAmount{{Month: "January", TotalAmount: 500000}}, nil
}

func (f *fakeClient) Trash(_ context.Context, id int) (*Transaction, error) {
	return &Transaction{ID: id}, nil
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

func TestFindByMerchantIDCaches(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	got, err := svc.FindByMerchantID(ctx, 12)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].MerchantID)

	exists, err := c.Exists(ctx, "transaction:find_by_merchant:merchant_id:12")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.FindByMerchantID(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, client.findByMerchantIDCalls)
}

func TestTrashPurgesAggregates(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	_, err := svc.MonthlyAmounts(ctx, 2026)
	require.NoError(t, err)
	_, err = svc.FindByMerchantID(ctx, 12)
	require.NoError(t, err)

	_, err = svc.Trash(ctx, 5)
	require.NoError(t, err)

	for _, key := range []string{
		"transaction:monthly_amounts:year:2026",
		"transaction:find_by_merchant:merchant_id:12",
	} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %q must be purged", key)
	}

	_, err = svc.MonthlyAmounts(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, client.monthlyAmountsCalls)
}
