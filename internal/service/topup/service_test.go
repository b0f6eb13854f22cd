package topup

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

	findAllCalls          int
	findByCardNumberCalls int
}

func (f *fakeClient) FindAll(_ context.Context, params ListParams) (*TopupsPage, error) {
	f.findAllCalls++
	return &TopupsPage{
		Topups: []Topup{{ID: 1, CardNumber: "4111111111111111", TopupAmount: 50000}},
		Meta:   PageMeta{Page: params.Page, PageSize: params.PageSize, TotalRecords: 1, TotalPages: 1},
	}, nil
}

func (f *fakeClient) FindByCardNumber(_ context.Context, cardNumber string) (*[]Topup, error) {
	f.findByCardNumberCalls++
	return &[]Topup{{ID: 1, CardNumber: cardNumber, TopupAmount: 50000}}, nil
}

func (f *fakeClient) Create(_ context.Context, req CreateTopupRequest) (*Topup, error) {
	return &Topup{ID: 2, CardNumber: req.CardNumber, TopupAmount: req.TopupAmount}, nil
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

func TestFindByCardNumberMasksKey(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	got, err := svc.FindByCardNumber(ctx, "4111111111111111")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = c.Get(ctx, "topup:find_by_card:card_number:4111________1111")
	assert.NoError(t, err)

	exists, err := c.Exists(ctx, "topup:find_by_card:card_number:4111111111111111")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.FindByCardNumber(ctx, "4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, 1, client.findByCardNumberCalls)
}

func TestCreatePurgesListViews(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	params := ListParams{Page: 1, PageSize: 20}
	_, err := svc.FindAll(ctx, params)
	require.NoError(t, err)

	// Detail views for other top-ups survive a create.
	require.NoError(t, c.Set(ctx, "topup:find_by_id:id:7", []byte(`{"id":7}`), time.Minute))

	_, err = svc.Create(ctx, CreateTopupRequest{
		CardNumber:  "4111111111111111",
		TopupAmount: 25000,
		TopupMethod: "bank_transfer",
	})
	require.NoError(t, err)

	_, err = c.Get(ctx, "topup:find_all:page:1:size:20:search:")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	exists, err := c.Exists(ctx, "topup:find_by_id:id:7")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.FindAll(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, client.findAllCalls)
}
