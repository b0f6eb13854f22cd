// Package tracing provides OpenTelemetry tracing for the payment gateway.
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config describes the OTLP exporter and sampling for the provider.
// Zero batch fields fall back to the defaults below.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Endpoint is the OTLP gRPC collector address, host:port.
	Endpoint string
	// Insecure disables TLS on the exporter connection.
	Insecure bool
	// Headers are sent with every export request.
	Headers map[string]string

	// SampleRate is the head sampling ratio, 0..1.
	SampleRate float64

	BatchTimeout       time.Duration
	MaxExportBatchSize int
	MaxQueueSize       int
}

const (
	defaultBatchTimeout       = 5 * time.Second
	defaultMaxExportBatchSize = 512
	defaultMaxQueueSize       = 2048
)

// Provider owns the SDK tracer provider lifecycle. Start installs it as
// the global provider; Stop flushes and shuts it down.
type Provider struct {
	config         Config
	tracerProvider *sdktrace.TracerProvider
	logger         *zap.Logger
}

// NewProvider validates the config and returns an unstarted provider.
func NewProvider(cfg *Config, logger *zap.Logger) (*Provider, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("tracing: collector endpoint is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := *cfg
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = defaultBatchTimeout
	}
	if c.MaxExportBatchSize <= 0 {
		c.MaxExportBatchSize = defaultMaxExportBatchSize
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = defaultMaxQueueSize
	}

	return &Provider{config: c, logger: logger}, nil
}

// Start connects the exporter and installs the tracer provider globally.
func (p *Provider) Start(ctx context.Context) error {
	res, err := p.buildResource(ctx)
	if err != nil {
		return fmt.Errorf("tracing: build resource: %w", err)
	}

	exporter, err := p.buildExporter(ctx)
	if err != nil {
		return fmt.Errorf("tracing: build exporter: %w", err)
	}

	p.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(
			exporter,
			sdktrace.WithBatchTimeout(p.config.BatchTimeout),
			sdktrace.WithMaxExportBatchSize(p.config.MaxExportBatchSize),
			sdktrace.WithMaxQueueSize(p.config.MaxQueueSize),
		)),
		sdktrace.WithSampler(p.sampler()),
	)
	otel.SetTracerProvider(p.tracerProvider)

	p.logger.Info("tracing provider started",
		zap.String("service", p.config.ServiceName),
		zap.String("endpoint", p.config.Endpoint),
		zap.Float64("sampleRate", p.config.SampleRate),
	)
	return nil
}

// Stop flushes pending spans and shuts the provider down. Safe to call
// on a provider that never started.
func (p *Provider) Stop(ctx context.Context) error {
	if p.tracerProvider == nil {
		return nil
	}
	p.logger.Info("stopping tracing provider")
	return p.tracerProvider.Shutdown(ctx)
}

// Tracer returns a named tracer. Before Start it falls back to the
// global provider, which is a no-op unless someone else installed one.
func (p *Provider) Tracer(name string) trace.Tracer {
	if p.tracerProvider == nil {
		return otel.GetTracerProvider().Tracer(name)
	}
	return p.tracerProvider.Tracer(name)
}

func (p *Provider) buildResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes([]attribute.KeyValue{
			semconv.ServiceName(p.config.ServiceName),
			semconv.ServiceVersion(p.config.ServiceVersion),
			semconv.DeploymentEnvironment(p.config.Environment),
		}...),
		resource.WithHost(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
	)
}

func (p *Provider) buildExporter(ctx context.Context) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(p.config.Endpoint),
	}
	if p.config.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	if len(p.config.Headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(p.config.Headers))
	}
	return otlptracegrpc.New(ctx, opts...)
}

func (p *Provider) sampler() sdktrace.Sampler {
	switch {
	case p.config.SampleRate <= 0:
		return sdktrace.NeverSample()
	case p.config.SampleRate >= 1:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.TraceIDRatioBased(p.config.SampleRate)
	}
}
