package merchant

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

	findByAPIKeyCalls int
	findByIDCalls     int
}

func (f *fakeClient) FindByAPIKey(_ context.Context, apiKey string) (*Merchant, error) {
	f.findByAPIKeyCalls++
	return &Merchant{ID: 9, UserID: 3, Name: "Coffee Corner", APIKey: apiKey, Status: "active"}, nil
}

func (f *fakeClient) FindByID(_ context.Context, id int) (*Merchant, error) {
	f.findByIDCalls++
	return &Merchant{ID: id, UserID: 3, Name: "Coffee Corner", Status: "active"}, nil
}

func (f *fakeClient) Update(_ context.Context, req UpdateMerchantRequest) (*Merchant, error) {
	return &Merchant{ID: req.ID, UserID: req.UserID, Name: req.Name, Status: req.Status}, nil
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

func TestFindByAPIKeyMasksKey(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	apiKey := "mk_live_abcdef1234567890"

	got, err := svc.FindByAPIKey(ctx, apiKey)
	require.NoError(t, err)
	assert.Equal(t, 9, got.ID)

	// Cached under the masked key, never the raw one.
	_, err = c.Get(ctx, "merchant:find_by_api_key:api_key:mk_l________________7890")
	assert.NoError(t, err)

	exists, err := c.Exists(ctx, "merchant:find_by_api_key:api_key:"+apiKey)
	require.NoError(t, err)
	assert.False(t, exists)

	// Second lookup is a hit.
	_, err = svc.FindByAPIKey(ctx, apiKey)
	require.NoError(t, err)
	assert.Equal(t, 1, client.findByAPIKeyCalls)
}

func TestUpdatePurgesAPIKeyView(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	_, err := svc.FindByID(ctx, 9)
	require.NoError(t, err)
	_, err = svc.FindByAPIKey(ctx, "mk_live_abcdef1234567890")
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateMerchantRequest{ID: 9, UserID: 3, Name: "Coffee Corner", Status: "inactive"})
	require.NoError(t, err)

	for _, key := range []string{
		"merchant:find_by_id:id:9",
		"merchant:find_by_api_key:api_key:mk_l________________7890",
	} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %q must be purged", key)
	}

	_, err = svc.FindByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, client.findByIDCalls)
}
