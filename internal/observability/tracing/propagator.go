package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc/metadata"
)

// SetupPropagators configures the global text map propagators to W3C Trace
// Context plus Baggage. Downstream services continue the same trace by
// extracting these headers from incoming gRPC metadata.
func SetupPropagators() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// MetadataCarrier adapts gRPC metadata to propagation.TextMapCarrier.
type MetadataCarrier metadata.MD

// Get returns the value associated with the passed key.
func (mc MetadataCarrier) Get(key string) string {
	values := metadata.MD(mc).Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Set stores the key-value pair.
func (mc MetadataCarrier) Set(key, value string) {
	metadata.MD(mc).Set(key, value)
}

// Keys lists the keys stored in this carrier.
func (mc MetadataCarrier) Keys() []string {
	keys := make([]string, 0, len(mc))
	for k := range mc {
		keys = append(keys, k)
	}
	return keys
}

// InjectOutgoing serializes the active trace context into the outgoing gRPC
// metadata of the returned context. This is the single point where the
// envelope touches the transport layer.
func InjectOutgoing(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	otel.GetTextMapPropagator().Inject(ctx, MetadataCarrier(md))
	return metadata.NewOutgoingContext(ctx, md)
}
