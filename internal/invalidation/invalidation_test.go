package invalidation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

func newTestCache(t *testing.T) cache.Cache {
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

	return c
}

func TestTargetPlan(t *testing.T) {
	target := Target{
		Family:       "card",
		DetailKeys:   []string{"card:find_by_id:id:42", "card:find_by_card:card_number:4111********1111"},
		ListPrefixes: []string{"card:find_all:", "card:find_active:"},
	}

	patterns := target.Plan()
	require.Len(t, patterns, 4)

	assert.Equal(t, cache.ExactKey("card:find_by_id:id:42"), patterns[0])
	assert.Equal(t, cache.ExactKey("card:find_by_card:card_number:4111********1111"), patterns[1])
	assert.Equal(t, cache.PrefixPattern("card:find_all:"), patterns[2])
	assert.Equal(t, cache.PrefixPattern("card:find_active:"), patterns[3])
}

func TestTargetMerge(t *testing.T) {
	a := Target{
		Family:       "card",
		DetailKeys:   []string{"card:find_by_id:id:1"},
		ListPrefixes: []string{"card:find_all:"},
	}
	b := Target{
		Family:       "card",
		DetailKeys:   []string{"card:find_by_user:user_id:7"},
		ListPrefixes: []string{"card:find_trashed:"},
	}

	merged := a.Merge(b)
	assert.Equal(t, "card", merged.Family)
	assert.Equal(t, []string{"card:find_by_id:id:1", "card:find_by_user:user_id:7"}, merged.DetailKeys)
	assert.Equal(t, []string{"card:find_all:", "card:find_trashed:"}, merged.ListPrefixes)

	// Merge must not alias the receivers' slices.
	merged.DetailKeys[0] = "changed"
	assert.Equal(t, "card:find_by_id:id:1", a.DetailKeys[0])
}

func TestPlannerPurge(t *testing.T) {
	c := newTestCache(t)
	planner := NewPlanner(c, observability.NopLogger())
	ctx := context.Background()

	seed := map[string]string{
		"card:find_by_id:id:42":                    "detail",
		"card:find_all:page:1:size:10:search:":     "list-1",
		"card:find_all:page:2:size:10:search:":     "list-2",
		"card:find_active:page:1:size:10:search:":  "active",
		"card:find_by_id:id:7":                     "other-detail",
		"merchant:find_all:page:1:size:10:search:": "other-family",
	}
	for key, val := range seed {
		require.NoError(t, c.Set(ctx, key, []byte(val), time.Minute))
	}

	planner.Purge(ctx, Target{
		Family:       "card",
		DetailKeys:   []string{"card:find_by_id:id:42"},
		ListPrefixes: []string{"card:find_all:", "card:find_active:"},
	})

	for _, gone := range []string{
		"card:find_by_id:id:42",
		"card:find_all:page:1:size:10:search:",
		"card:find_all:page:2:size:10:search:",
		"card:find_active:page:1:size:10:search:",
	} {
		_, err := c.Get(ctx, gone)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %q should be purged", gone)
	}

	for _, kept := range []string{
		"card:find_by_id:id:7",
		"merchant:find_all:page:1:size:10:search:",
	} {
		_, err := c.Get(ctx, kept)
		assert.NoError(t, err, "key %q must survive", kept)
	}
}

// failingCache counts deletes and fails them all.
type failingCache struct {
	cache.Cache

	mu      sync.Mutex
	deletes int
}

func (f *failingCache) Delete(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return errors.New("backend down")
}

func (f *failingCache) DeletePrefix(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return errors.New("backend down")
}

func TestPlannerPurgeSwallowsFailures(t *testing.T) {
	fc := &failingCache{Cache: newTestCache(t)}
	planner := NewPlanner(fc, observability.NopLogger())

	// Must not panic or stop at the first failure.
	planner.Purge(context.Background(), Target{
		Family:       "card",
		DetailKeys:   []string{"card:find_by_id:id:1", "card:find_by_id:id:2"},
		ListPrefixes: []string{"card:find_all:"},
	})

	assert.Equal(t, 3, fc.deletes)
}

func TestPlannerPurgeDisabledCache(t *testing.T) {
	c, err := cache.New(&config.CacheConfig{Enabled: false}, observability.NopLogger())
	require.NoError(t, err)

	planner := NewPlanner(c, observability.NopLogger())
	planner.Purge(context.Background(), Target{
		Family:     "card",
		DetailKeys: []string{"card:find_by_id:id:1"},
	})
}
