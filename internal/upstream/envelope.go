package upstream

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

// Metric outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// MetricsSink records one sample per facade invocation. Implemented by
// the metrics package; tests substitute fakes.
type MetricsSink interface {
	RecordUpstream(class, verb, outcome string, duration time.Duration)
}

// envelope is the per-invocation trace/metrics wrapper: one span, one
// start time, one close. Closing twice is a programming error; the
// second close is dropped and logged loudly instead of corrupting the
// span or double-counting the metric.
type envelope struct {
	span   trace.Span
	op     Operation
	sink   MetricsSink
	logger observability.Logger
	start  time.Time
	closed bool
}

// begin opens the span, stamps the operation attributes, and emits the
// "started" event.
func (f *Facade) begin(ctx context.Context, op Operation) (context.Context, *envelope) {
	ctx, span := f.tracer.Start(ctx, op.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(op.Attributes...),
	)
	span.SetAttributes(
		attribute.String("operation.class", string(op.Class)),
		attribute.String("operation.verb", string(op.Verb)),
	)
	span.AddEvent("started", trace.WithAttributes(op.Attributes...))

	return ctx, &envelope{
		span:   span,
		op:     op,
		sink:   f.sink,
		logger: f.logger,
		start:  time.Now(),
	}
}

// endSuccess closes the envelope with a success outcome.
func (e *envelope) endSuccess(message string) {
	e.end(OutcomeSuccess, message, nil)
}

// endFailure closes the envelope with a failure outcome.
func (e *envelope) endFailure(message string, err error) {
	e.end(OutcomeError, message, err)
}

func (e *envelope) end(outcome, message string, err error) {
	if e.closed {
		e.logger.Error("span closed twice",
			observability.String("operation", e.op.Name),
			observability.String("outcome", outcome))
		return
	}
	e.closed = true

	duration := time.Since(e.start)

	e.span.AddEvent("completed", trace.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("message", message),
		attribute.Int64("duration_ms", duration.Milliseconds()),
	))

	if err != nil {
		e.span.RecordError(err)
		e.span.SetStatus(codes.Error, message)
	} else {
		e.span.SetStatus(codes.Ok, "")
	}
	e.span.End()

	e.sink.RecordUpstream(string(e.op.Class), string(e.op.Verb), outcome, duration)
}

// abandon closes the envelope as a failure if no regular close happened.
// Deferred by the facade so a panic in a caller-supplied closure still
// leaves exactly one closed span behind.
func (e *envelope) abandon() {
	if !e.closed {
		e.endFailure("abandoned", nil)
	}
}
