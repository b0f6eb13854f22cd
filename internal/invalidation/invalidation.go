// Package invalidation computes and executes the cache purge set for a
// mutated entity. Mutations never edit cached values in place; they drop
// every key the mutation could have made stale and let the next read
// repopulate.
package invalidation

import (
	"context"
	"errors"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

// Target describes the cache footprint of one mutated entity: the exact
// detail keys it is cacheable under plus the list/aggregate prefixes of
// its family.
type Target struct {
	// Family is the entity family name, e.g. "card".
	Family string

	// DetailKeys are the exact keys to drop: the detail view for every
	// identifier the entity is cacheable under (id, card number, api key,
	// owning user or merchant id).
	DetailKeys []string

	// ListPrefixes are the literal prefixes of every list/aggregate view
	// the mutation could have made stale: paginated lists, active and
	// trashed views, statistics buckets. Restore and trash mutations must
	// include both the active and trashed list prefixes since the record
	// moves between them.
	ListPrefixes []string
}

// Plan converts the target into deletion patterns: one exact pattern per
// detail key, one prefix pattern per list prefix.
func (t Target) Plan() []cache.Pattern {
	patterns := make([]cache.Pattern, 0, len(t.DetailKeys)+len(t.ListPrefixes))
	for _, key := range t.DetailKeys {
		patterns = append(patterns, cache.ExactKey(key))
	}
	for _, prefix := range t.ListPrefixes {
		patterns = append(patterns, cache.PrefixPattern(prefix))
	}
	return patterns
}

// Merge combines two targets of the same family.
func (t Target) Merge(other Target) Target {
	return Target{
		Family:       t.Family,
		DetailKeys:   append(append([]string{}, t.DetailKeys...), other.DetailKeys...),
		ListPrefixes: append(append([]string{}, t.ListPrefixes...), other.ListPrefixes...),
	}
}

// Planner purges cache entries for mutated entities. Purge failures are
// logged and swallowed: a stale entry expires on its own TTL, so a failed
// purge degrades freshness but never the request.
type Planner struct {
	cache  cache.Cache
	logger observability.Logger
}

// NewPlanner creates a planner over the given cache.
func NewPlanner(c cache.Cache, logger observability.Logger) *Planner {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Planner{cache: c, logger: logger}
}

// Purge deletes every pattern the target plans. All patterns are
// attempted even when some fail.
func (p *Planner) Purge(ctx context.Context, target Target) {
	for _, pattern := range target.Plan() {
		if err := cache.Delete(ctx, p.cache, pattern); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			p.logger.Warn("cache purge failed",
				observability.String("family", target.Family),
				observability.String("pattern", pattern.String()),
				observability.Error(err))
		}
	}

	p.logger.Debug("cache purged",
		observability.String("family", target.Family),
		observability.Int("patterns", len(target.DetailKeys)+len(target.ListPrefixes)))
}
