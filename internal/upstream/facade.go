package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/circuitbreaker"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/invalidation"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability/tracing"
)

// defaultCallTimeout bounds the remote call when no timeout is configured.
const defaultCallTimeout = 10 * time.Second

// Facade executes the full cache-aside, traced, error-mapped call flow.
// It is safe for concurrent use; all per-invocation state lives on the
// stack of Fetch/Mutate.
type Facade struct {
	cache       cache.Cache
	tracer      trace.Tracer
	sink        MetricsSink
	planner     *invalidation.Planner
	breakers    *circuitbreaker.Registry
	logger      observability.Logger
	callTimeout time.Duration
}

// Options configures a Facade.
type Options struct {
	Cache       cache.Cache
	Tracer      trace.Tracer
	Sink        MetricsSink
	Planner     *invalidation.Planner
	Breakers    *circuitbreaker.Registry
	Logger      observability.Logger
	CallTimeout time.Duration
}

// NewFacade creates a facade. Cache, Tracer and Sink are required; the
// planner defaults to one over the same cache, and Breakers may be nil to
// run without circuit breaking.
func NewFacade(opts Options) (*Facade, error) {
	if opts.Cache == nil {
		return nil, errors.New("upstream: cache is required")
	}
	if opts.Tracer == nil {
		return nil, errors.New("upstream: tracer is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("upstream: metrics sink is required")
	}
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger()
	}
	if opts.Planner == nil {
		opts.Planner = invalidation.NewPlanner(opts.Cache, opts.Logger)
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}

	return &Facade{
		cache:       opts.Cache,
		tracer:      opts.Tracer,
		sink:        opts.Sink,
		planner:     opts.Planner,
		breakers:    opts.Breakers,
		logger:      opts.Logger,
		callTimeout: opts.CallTimeout,
	}, nil
}

// Fetch runs one read operation: cache lookup, remote call on miss,
// transform, cache store. R is the raw upstream response, T the domain
// response returned to the caller.
//
// A cache hit returns the cached value unchanged and never re-invokes the
// remote call. Cache read failures and undecodable entries degrade to a
// miss; cache write failures are logged and swallowed. Remote failures
// come back classified by the errmap taxonomy and never touch the cache.
func Fetch[R, T any](
	ctx context.Context,
	f *Facade,
	op Operation,
	call func(ctx context.Context) (R, error),
	transform func(raw R) (T, error),
) (T, error) {
	var zero T

	ctx, env := f.begin(ctx, op)
	defer env.abandon()

	if op.cached() {
		if cached, ok := cacheGet[T](ctx, f, op); ok {
			env.endSuccess("served from cache")
			return cached, nil
		}
	}

	raw, err := invoke(ctx, f, op, call)
	if err != nil {
		classified := errmap.FromRPC(err)
		env.endFailure(classified.Message, classified)
		return zero, classified
	}

	result, err := transform(raw)
	if err != nil {
		classified := errmap.Internal(err)
		env.endFailure("response transform failed", classified)
		return zero, classified
	}

	env.endSuccess("served from upstream")

	if op.cached() {
		f.cacheSet(ctx, op, result)
	}

	return result, nil
}

// Mutate runs one write operation: remote call, cache purge, transform.
// The purge is keyed to the remote call succeeding, not to the whole
// operation: once the upstream accepted the mutation its state changed,
// and cached views must go even if the response then fails to transform.
// A failed remote call leaves the cache untouched.
func Mutate[R, T any](
	ctx context.Context,
	f *Facade,
	op Operation,
	call func(ctx context.Context) (R, error),
	transform func(raw R) (T, error),
) (T, error) {
	var zero T

	ctx, env := f.begin(ctx, op)
	defer env.abandon()

	raw, err := invoke(ctx, f, op, call)
	if err != nil {
		classified := errmap.FromRPC(err)
		env.endFailure(classified.Message, classified)
		return zero, classified
	}

	if op.Invalidate != nil {
		f.planner.Purge(ctx, *op.Invalidate)
	}

	result, err := transform(raw)
	if err != nil {
		classified := errmap.Internal(err)
		env.endFailure("response transform failed", classified)
		return zero, classified
	}

	env.endSuccess("mutation applied")

	return result, nil
}

// invoke issues the remote call with trace context injected, a bounded
// timeout, and the per-service circuit breaker when one is configured.
func invoke[R any](ctx context.Context, f *Facade, op Operation, call func(ctx context.Context) (R, error)) (R, error) {
	ctx = tracing.InjectOutgoing(ctx)

	ctx, cancel := context.WithTimeout(ctx, f.callTimeout)
	defer cancel()

	if f.breakers == nil || op.Service == "" {
		return call(ctx)
	}

	var raw R
	err := f.breakers.Get(op.Service).Execute(func() error {
		var callErr error
		raw, callErr = call(ctx)
		return callErr
	})
	return raw, err
}

// cacheGet reads and decodes the operation's cache entry. Any failure is
// a miss: read errors are backend trouble, decode errors are corrupt
// entries, and neither may fail the request.
func cacheGet[T any](ctx context.Context, f *Facade, op Operation) (T, bool) {
	var zero T

	data, err := f.cache.Get(ctx, op.CacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDisabled) {
			f.logger.Warn("cache read failed, treating as miss",
				observability.String("operation", op.Name),
				observability.String("key", op.CacheKey),
				observability.Error(err))
		}
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		f.logger.Warn("cache entry undecodable, treating as miss",
			observability.String("operation", op.Name),
			observability.String("key", op.CacheKey),
			observability.Error(err))
		return zero, false
	}

	return value, true
}

// cacheSet stores the transformed response. Failures are logged and
// swallowed.
func (f *Facade) cacheSet(ctx context.Context, op Operation, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		f.logger.Warn("cache encode failed, skipping store",
			observability.String("operation", op.Name),
			observability.String("key", op.CacheKey),
			observability.Error(err))
		return
	}

	if err := f.cache.Set(ctx, op.CacheKey, data, op.TTL); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		f.logger.Warn("cache write failed",
			observability.String("operation", op.Name),
			observability.String("key", op.CacheKey),
			observability.Error(err))
	}
}

// RequireItem adapts entity transforms that must produce a payload: a
// successful upstream response carrying no data where the operation
// requires it is an internal error, not an empty success.
func RequireItem[T any](item *T, operation string) (T, error) {
	var zero T
	if item == nil {
		return zero, fmt.Errorf("%s: upstream response missing expected payload", operation)
	}
	return *item, nil
}
