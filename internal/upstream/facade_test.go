package upstream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/invalidation"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

// fakeSink records upstream metric samples.
type fakeSink struct {
	mu      sync.Mutex
	samples []sinkSample
}

type sinkSample struct {
	class    string
	verb     string
	outcome  string
	duration time.Duration
}

func (s *fakeSink) RecordUpstream(class, verb, outcome string, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sinkSample{class, verb, outcome, duration})
}

func (s *fakeSink) all() []sinkSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkSample{}, s.samples...)
}

type testHarness struct {
	facade   *Facade
	cache    cache.Cache
	sink     *fakeSink
	exporter *tracetest.InMemoryExporter
}

func newHarness(t *testing.T) *testHarness {
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

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	sink := &fakeSink{}

	f, err := NewFacade(Options{
		Cache:   c,
		Tracer:  tp.Tracer("test"),
		Sink:    sink,
		Planner: invalidation.NewPlanner(c, observability.NopLogger()),
		Logger:  observability.NopLogger(),
	})
	require.NoError(t, err)

	return &testHarness{facade: f, cache: c, sink: sink, exporter: exporter}
}

type rawCard struct {
	ID         int    `json:"id"`
	CardNumber string `json:"card_number"`
}

type cardResponse struct {
	ID         int    `json:"id"`
	CardNumber string `json:"card_number"`
}

func transformCard(raw *rawCard) (cardResponse, error) {
	if raw == nil {
		return cardResponse{}, errors.New("missing payload")
	}
	return cardResponse{ID: raw.ID, CardNumber: raw.CardNumber}, nil
}

func detailOp() Operation {
	return Operation{
		Name:     "card.FindByID",
		Service:  "card",
		Class:    ClassDetail,
		Verb:     VerbGet,
		CacheKey: "card:find_by_id:id:42",
		TTL:      10 * time.Minute,
		Attributes: []attribute.KeyValue{
			attribute.Int("card.id", 42),
		},
	}
}

func TestFetchMissCallsUpstreamAndCaches(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	calls := 0
	call := func(ctx context.Context) (*rawCard, error) {
		calls++
		return &rawCard{ID: 42, CardNumber: "4111********1111"}, nil
	}

	got, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.NoError(t, err)
	assert.Equal(t, cardResponse{ID: 42, CardNumber: "4111********1111"}, got)
	assert.Equal(t, 1, calls)

	// The transformed response is now cached under the operation key.
	data, err := h.cache.Get(ctx, "card:find_by_id:id:42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"card_number":"4111********1111"}`, string(data))

	samples := h.sink.all()
	require.Len(t, samples, 1)
	assert.Equal(t, sinkSample{"detail", "GET", "success", samples[0].duration}, samples[0])
}

func TestFetchHitSkipsUpstream(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	calls := 0
	call := func(ctx context.Context) (*rawCard, error) {
		calls++
		return &rawCard{ID: 42, CardNumber: "4111********1111"}, nil
	}

	_, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.NoError(t, err)

	// Two consecutive hits return the same value without another call.
	for i := 0; i < 2; i++ {
		got, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
		require.NoError(t, err)
		assert.Equal(t, cardResponse{ID: 42, CardNumber: "4111********1111"}, got)
	}
	assert.Equal(t, 1, calls)
}

func TestFetchHitSkipsUpstreamSeed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.cache.Set(ctx, "card:find_by_id:id:42",
		[]byte(`{"id":42,"card_number":"4111********1111"}`), time.Minute))

	call := func(ctx context.Context) (*rawCard, error) {
		t.Fatal("remote call must not run on a cache hit")
		return nil, nil
	}

	got, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.NoError(t, err)
	assert.Equal(t, cardResponse{ID: 42, CardNumber: "4111********1111"}, got)

	spans := h.exporter.GetSpans()
	require.Len(t, spans, 1)
	assertCompletedEvent(t, spans[0], "success", "served from cache")
}

func TestFetchCorruptEntryDegradesToMiss(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.cache.Set(ctx, "card:find_by_id:id:42", []byte("{not json"), time.Minute))

	calls := 0
	call := func(ctx context.Context) (*rawCard, error) {
		calls++
		return &rawCard{ID: 42, CardNumber: "4111********1111"}, nil
	}

	got, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)
	assert.Equal(t, 1, calls)

	// The corrupt entry is overwritten by the fresh response.
	data, err := h.cache.Get(ctx, "card:find_by_id:id:42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"card_number":"4111********1111"}`, string(data))
}

func TestFetchFailureClassifiedAndNotCached(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	call := func(ctx context.Context) (*rawCard, error) {
		return nil, status.Error(codes.NotFound, "card with id 42 not found")
	}

	_, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.Error(t, err)
	assert.Equal(t, errmap.KindNotFound, errmap.KindOf(err))

	// No negative caching: the failure never produces a cache entry.
	_, err = h.cache.Get(ctx, "card:find_by_id:id:42")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	samples := h.sink.all()
	require.Len(t, samples, 1)
	assert.Equal(t, "error", samples[0].outcome)

	spans := h.exporter.GetSpans()
	require.Len(t, spans, 1)
	assertCompletedEvent(t, spans[0], "error", "card with id 42 not found")
}

func TestFetchMissingPayloadIsInternal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	call := func(ctx context.Context) (*rawCard, error) {
		return nil, nil
	}

	_, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.Error(t, err)
	assert.Equal(t, errmap.KindInternal, errmap.KindOf(err))

	// Transform failures do not populate the cache either.
	_, err = h.cache.Get(ctx, "card:find_by_id:id:42")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestFetchUncachedOperation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	op := detailOp()
	op.CacheKey = ""

	calls := 0
	call := func(ctx context.Context) (*rawCard, error) {
		calls++
		return &rawCard{ID: 42}, nil
	}

	for i := 0; i < 2; i++ {
		_, err := Fetch(ctx, h.facade, op, call, transformCard)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestFetchAppliesCallTimeout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	call := func(ctx context.Context) (*rawCard, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "remote call must carry a deadline")
		assert.WithinDuration(t, time.Now().Add(defaultCallTimeout), deadline, time.Second)
		return &rawCard{ID: 42}, nil
	}

	_, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.NoError(t, err)
}

func TestMutatePurgesInvalidationTarget(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seed := []string{
		"card:find_by_id:id:42",
		"card:find_all:page:1:size:10:search:",
		"card:find_all:page:2:size:10:search:",
		"card:find_by_id:id:7",
	}
	for _, key := range seed {
		require.NoError(t, h.cache.Set(ctx, key, []byte(`{}`), time.Minute))
	}

	op := Operation{
		Name:    "card.Update",
		Service: "card",
		Class:   ClassCommand,
		Verb:    VerbPut,
		Invalidate: &invalidation.Target{
			Family:       "card",
			DetailKeys:   []string{"card:find_by_id:id:42"},
			ListPrefixes: []string{"card:find_all:"},
		},
	}

	call := func(ctx context.Context) (*rawCard, error) {
		return &rawCard{ID: 42, CardNumber: "4111********1111"}, nil
	}

	got, err := Mutate(ctx, h.facade, op, call, transformCard)
	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)

	for _, gone := range seed[:3] {
		_, err := h.cache.Get(ctx, gone)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %q should be purged", gone)
	}

	_, err = h.cache.Get(ctx, "card:find_by_id:id:7")
	assert.NoError(t, err, "unrelated entity must stay cached")
}

func TestMutateFailureLeavesCacheIntact(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.cache.Set(ctx, "card:find_by_id:id:42", []byte(`{}`), time.Minute))

	op := Operation{
		Name:    "card.Update",
		Service: "card",
		Class:   ClassCommand,
		Verb:    VerbPut,
		Invalidate: &invalidation.Target{
			Family:     "card",
			DetailKeys: []string{"card:find_by_id:id:42"},
		},
	}

	call := func(ctx context.Context) (*rawCard, error) {
		return nil, status.Error(codes.Aborted, "concurrent update")
	}

	_, err := Mutate(ctx, h.facade, op, call, transformCard)
	require.Error(t, err)
	assert.Equal(t, errmap.KindConflict, errmap.KindOf(err))

	_, err = h.cache.Get(ctx, "card:find_by_id:id:42")
	assert.NoError(t, err, "failed mutation must not purge")
}

func TestMutateMissingPayloadStillPurges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.cache.Set(ctx, "card:find_all:page:1:size:10:search:",
		[]byte(`{"stale":true}`), time.Minute))

	op := Operation{
		Name:    "card.Update",
		Service: "card",
		Class:   ClassCommand,
		Verb:    VerbPut,
		Invalidate: &invalidation.Target{
			Family:       "card",
			ListPrefixes: []string{"card:find_all:"},
		},
	}

	// The upstream applied the mutation but returned no payload: the
	// response is unusable, yet the state changed, so views must go.
	call := func(ctx context.Context) (*rawCard, error) {
		return nil, nil
	}

	_, err := Mutate(ctx, h.facade, op, call, transformCard)
	require.Error(t, err)
	assert.Equal(t, errmap.KindInternal, errmap.KindOf(err))

	_, err = h.cache.Get(ctx, "card:find_all:page:1:size:10:search:")
	assert.ErrorIs(t, err, cache.ErrCacheMiss, "stale list view must be purged once the upstream accepted the mutation")
}

func TestSpanLifecycleExactlyOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	call := func(ctx context.Context) (*rawCard, error) {
		return &rawCard{ID: 42}, nil
	}

	_, err := Fetch(ctx, h.facade, detailOp(), call, transformCard)
	require.NoError(t, err)

	spans := h.exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "card.FindByID", span.Name)

	var started, completed int
	for _, event := range span.Events {
		switch event.Name {
		case "started":
			started++
		case "completed":
			completed++
		}
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, completed)
}

func TestEnvelopeDoubleCloseIsDropped(t *testing.T) {
	h := newHarness(t)

	_, env := h.facade.begin(context.Background(), detailOp())
	env.endSuccess("first")
	env.endFailure("second", nil)

	// Only the first close produced a metric sample.
	samples := h.sink.all()
	require.Len(t, samples, 1)
	assert.Equal(t, "success", samples[0].outcome)

	spans := h.exporter.GetSpans()
	require.Len(t, spans, 1)
}

func TestRequireItem(t *testing.T) {
	card := rawCard{ID: 1}

	got, err := RequireItem(&card, "card.FindByID")
	require.NoError(t, err)
	assert.Equal(t, card, got)

	_, err = RequireItem[rawCard](nil, "card.FindByID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing expected payload")
}

func assertCompletedEvent(t *testing.T, span tracetest.SpanStub, outcome, message string) {
	t.Helper()

	for _, event := range span.Events {
		if event.Name != "completed" {
			continue
		}
		attrs := make(map[string]string)
		for _, kv := range event.Attributes {
			attrs[string(kv.Key)] = kv.Value.Emit()
		}
		assert.Equal(t, outcome, attrs["outcome"])
		assert.Equal(t, message, attrs["message"])
		return
	}
	t.Fatalf("span %s has no completed event", span.Name)
}
