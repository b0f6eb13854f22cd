package upstream

import (
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/invalidation"
)

// Class groups operations by the shape and volatility of their result.
// The class selects the TTL policy and labels the duration metric.
type Class string

// Operation classes.
const (
	ClassList    Class = "list"
	ClassDetail  Class = "detail"
	ClassMonthly Class = "monthly"
	ClassYearly  Class = "yearly"
	ClassCommand Class = "command"
)

// Classes lists every operation class, for metric pre-initialization.
func Classes() []string {
	return []string{
		string(ClassList),
		string(ClassDetail),
		string(ClassMonthly),
		string(ClassYearly),
		string(ClassCommand),
	}
}

// Verb is the HTTP-style verb an operation corresponds to at the gateway
// boundary. It labels metrics only; it does not affect the call flow.
type Verb string

// Operation verbs.
const (
	VerbGet    Verb = "GET"
	VerbPost   Verb = "POST"
	VerbPut    Verb = "PUT"
	VerbDelete Verb = "DELETE"
)

// Operation parameterizes one facade invocation. Entity packages build
// these per call site; the facade never inspects domain types.
type Operation struct {
	// Name identifies the operation in spans and logs,
	// e.g. "card.FindByID".
	Name string

	// Service is the upstream service the call targets, e.g. "card".
	// Selects the circuit breaker.
	Service string

	// Class selects the TTL policy and the metrics label.
	Class Class

	// Verb labels the metrics sample.
	Verb Verb

	// CacheKey is the literal lookup key. Empty means the operation is
	// uncached (pure commands).
	CacheKey string

	// TTL is the expiry for the cached response. Zero falls back to the
	// backend default. Ignored when CacheKey is empty.
	TTL time.Duration

	// Attributes are stamped on the span at creation. Identifying values
	// must be pre-masked by the caller; the facade does not know which
	// attributes are sensitive.
	Attributes []attribute.KeyValue

	// Invalidate is the cache footprint to purge after a successful
	// mutation. Nil for reads.
	Invalidate *invalidation.Target
}

// cached reports whether the operation participates in the cache.
func (op Operation) cached() bool {
	return op.CacheKey != ""
}
