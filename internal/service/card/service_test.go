package card

import (
	"context"
	"sync"
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

// fakeClient counts calls per method and serves canned cards.
type fakeClient struct {
	Client

	mu    sync.Mutex
	calls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: make(map[string]int)}
}

func (f *fakeClient) count(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
}

func (f *fakeClient) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeClient) FindByID(_ context.Context, id int) (*Card, error) {
	f.count("FindByID")
	return &Card{ID: id, UserID: 7, CardNumber: "4111111111111111", CardType: "debit"}, nil
}

func (f *fakeClient) FindAll(_ context.Context, params ListParams) (*CardsPage, error) {
	f.count("FindAll")
	return &CardsPage{
		Cards: []Card{{ID: 42, UserID: 7, CardNumber: "4111111111111111"}},
		Meta:  PageMeta{Page: params.Page, PageSize: params.PageSize, TotalRecords: 1, TotalPages: 1},
	}, nil
}

func (f *fakeClient) FindByCardNumber(_ context.Context, cardNumber string) (*Card, error) {
	f.count("FindByCardNumber")
	return &Card{ID: 42, UserID: 7, CardNumber: cardNumber}, nil
}

func (f *fakeClient) Update(_ context.Context, req UpdateCardRequest) (*Card, error) {
	f.count("Update")
	return &Card{ID: req.ID, UserID: req.UserID, CardType: req.CardType}, nil
}

func (f *fakeClient) Trash(_ context.Context, id int) (*Card, error) {
	f.count("Trash")
	now := "2026-08-25T00:00:00Z"
	return &Card{ID: id, DeletedAt: &now}, nil
}

func (f *fakeClient) FindTrashed(_ context.Context, params ListParams) (*CardsPage, error) {
	f.count("FindTrashed")
	return &CardsPage{Meta: PageMeta{Page: params.Page, PageSize: params.PageSize}}, nil
}

func (f *fakeClient) DeletePermanent(_ context.Context, _ int) (*bool, error) {
	f.count("DeletePermanent")
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

	client := newFakeClient()
	ttl := config.NewTTLPolicy(config.TTLPolicyConfig{
		List:    config.Duration(10 * time.Minute),
		Detail:  config.Duration(10 * time.Minute),
		Monthly: config.Duration(30 * time.Minute),
		Yearly:  config.Duration(2 * time.Hour),
	})

	return NewService(client, facade, ttl), client, c
}

func TestFindByIDServedFromCacheOnSecondCall(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	first, err := svc.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, first.ID)

	_, err = c.Get(ctx, "card:find_by_id:id:42")
	require.NoError(t, err, "detail view should be cached under the builder's key")

	second, err := svc.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.callCount("FindByID"), "cache hit must not re-invoke the upstream")
}

func TestUpdateInvalidatesDetailAndListViews(t *testing.T) {
	svc, client, c := newTestService(t)
	ctx := context.Background()

	_, err := svc.FindByID(ctx, 42)
	require.NoError(t, err)
	_, err = svc.FindAll(ctx, ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)

	for _, key := range []string{
		"card:find_by_id:id:42",
		"card:find_all:page:1:size:10:search:",
	} {
		_, err := c.Get(ctx, key)
		require.NoError(t, err, "key %q should be cached before the mutation", key)
	}

	_, err = svc.Update(ctx, UpdateCardRequest{ID: 42, UserID: 7, CardType: "credit"})
	require.NoError(t, err)

	for _, key := range []string{
		"card:find_by_id:id:42",
		"card:find_all:page:1:size:10:search:",
	} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %q must be purged by the update", key)
	}

	refetched, err := svc.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, refetched.ID)
	assert.Equal(t, 2, client.callCount("FindByID"), "post-update read must hit the upstream again")
}

func TestTrashPurgesActiveAndTrashedLists(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()

	_, err := svc.FindAll(ctx, ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	_, err = svc.FindTrashed(ctx, ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)

	_, err = svc.Trash(ctx, 42)
	require.NoError(t, err)

	for _, key := range []string{
		"card:find_all:page:1:size:10:search:",
		"card:find_trashed:page:1:size:10:search:",
	} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss,
			"key %q must be purged: the record moved between active and trashed views", key)
	}
}

func TestFindByCardNumberMasksKeyAndAttributes(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()

	got, err := svc.FindByCardNumber(ctx, "4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", got.CardNumber)

	// The cache key carries only the masked number.
	_, err = c.Get(ctx, "card:find_by_card:card_number:4111________1111")
	assert.NoError(t, err, "cached under the masked key")

	exists, err := c.Exists(ctx, "card:find_by_card:card_number:4111111111111111")
	require.NoError(t, err)
	assert.False(t, exists, "raw card number must never be a cache key")
}

func TestDeletePermanent(t *testing.T) {
	svc, client, _ := newTestService(t)

	ok, err := svc.DeletePermanent(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, client.callCount("DeletePermanent"))
}
