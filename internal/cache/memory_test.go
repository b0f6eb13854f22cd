package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

func newTestMemoryCache(t *testing.T, maxEntries int) *memoryCache {
	t.Helper()

	cfg := &config.CacheConfig{
		Enabled:    true,
		Type:       config.CacheTypeMemory,
		MaxEntries: maxEntries,
		DefaultTTL: config.Duration(5 * time.Minute),
	}

	c, err := newMemoryCache(cfg, observability.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	_, err := c.Get(ctx, "card:find_by_id:id:42")
	assert.ErrorIs(t, err, ErrCacheMiss)

	err = c.Set(ctx, "card:find_by_id:id:42", []byte(`{"id":42}`), time.Minute)
	require.NoError(t, err)

	val, err := c.Get(ctx, "card:find_by_id:id:42")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":42}`), val)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("first"), time.Minute))
	require.NoError(t, c.Set(ctx, "key", []byte("second"), time.Minute))

	val, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), val)

	// Overwrites refresh the size gauge the same way inserts do.
	size := testutil.ToFloat64(GetCacheMetrics().sizeGauge.WithLabelValues("memory"))
	assert.Equal(t, float64(1), size)
	assert.Equal(t, int64(1), c.Stats().Size)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 10*time.Millisecond))

	val, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	c := newTestMemoryCache(t, 3)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Minute))

	// Touch "a" so "b" becomes least recently used.
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "d", []byte("4"), time.Minute))

	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)

	for _, key := range []string{"a", "c", "d"} {
		_, err := c.Get(ctx, key)
		assert.NoError(t, err, "key %q should survive eviction", key)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting an absent key is a no-op.
	assert.NoError(t, c.Delete(ctx, "missing"))
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	keys := []string{
		"card:find_all:page:1:size:10:search:",
		"card:find_all:page:2:size:10:search:",
		"card:find_all:page:1:size:25:search:gold",
	}
	for _, key := range keys {
		require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	}
	require.NoError(t, c.Set(ctx, "card:find_by_id:id:42", []byte("v"), time.Minute))
	require.NoError(t, c.Set(ctx, "merchant:find_all:page:1:size:10:search:", []byte("v"), time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "card:find_all:"))

	for _, key := range keys {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, ErrCacheMiss, "key %q should be gone", key)
	}

	_, err := c.Get(ctx, "card:find_by_id:id:42")
	assert.NoError(t, err, "other operations of the family must survive")

	_, err = c.Get(ctx, "merchant:find_all:page:1:size:10:search:")
	assert.NoError(t, err, "other families must survive")

	// Zero matches is not an error.
	assert.NoError(t, c.DeletePrefix(ctx, "topup:find_all:"))
}

func TestMemoryCacheExists(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	exists, err = c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Set(ctx, "ephemeral", []byte("value"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	exists, err = c.Exists(ctx, "ephemeral")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheStats(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	_, _ = c.Get(ctx, "key")
	_, _ = c.Get(ctx, "key")
	_, _ = c.Get(ctx, "missing")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Size)
	assert.InDelta(t, 66.6, stats.HitRate(), 0.1)
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("v"), 10*time.Millisecond))
	}
	require.NoError(t, c.Set(ctx, "keeper", []byte("v"), time.Minute))

	time.Sleep(20 * time.Millisecond)
	c.cleanup()

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Size)

	_, err := c.Get(ctx, "keeper")
	assert.NoError(t, err)
}

func TestMemoryCacheCloseIdempotent(t *testing.T) {
	c := newTestMemoryCache(t, 100)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
