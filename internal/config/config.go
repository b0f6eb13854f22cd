package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the payment gateway.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Cache     CacheConfig     `yaml:"cache"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// ServerConfig configures the public HTTP listener.
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"readTimeout"`
	WriteTimeout    Duration `yaml:"writeTimeout"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracingConfig configures OpenTelemetry trace export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sampleRate"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// RateLimitConfig configures the token-bucket rate limiter on the HTTP
// boundary.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// UpstreamConfig configures the gRPC connections to the payment
// microservices.
type UpstreamConfig struct {
	// CallTimeout bounds each remote call issued by the facade.
	CallTimeout Duration `yaml:"callTimeout"`

	// Breaker configures the circuit breaker wrapped around remote calls.
	Breaker BreakerConfig `yaml:"breaker"`

	// Services maps service names to gRPC target addresses.
	Services map[string]string `yaml:"services"`
}

// BreakerConfig configures circuit breaking for upstream calls.
type BreakerConfig struct {
	Enabled     bool     `yaml:"enabled"`
	MaxRequests uint32   `yaml:"maxRequests"`
	Interval    Duration `yaml:"interval"`
	Timeout     Duration `yaml:"timeout"`
	MinRequests uint32   `yaml:"minRequests"`
	FailureRate float64  `yaml:"failureRate"`
}

// Known upstream service names.
var upstreamServices = []string{
	"card", "merchant", "topup", "transaction", "transfer", "withdraw",
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Endpoint:   "localhost:4317",
			Insecure:   true,
			SampleRate: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9091,
			Path:    "/metrics",
		},
		Cache: DefaultCacheConfig(),
		Upstream: UpstreamConfig{
			CallTimeout: Duration(5 * time.Second),
			Breaker: BreakerConfig{
				Enabled:     true,
				MaxRequests: 3,
				Interval:    Duration(60 * time.Second),
				Timeout:     Duration(30 * time.Second),
				MinRequests: 10,
				FailureRate: 0.5,
			},
			Services: map[string]string{},
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			RPS:     100,
			Burst:   200,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port %d out of range", c.Metrics.Port)
		}
		if c.Metrics.Port == c.Server.Port {
			return fmt.Errorf("metrics.port must differ from server.port")
		}
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sampleRate %v out of range [0,1]", c.Tracing.SampleRate)
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if c.Upstream.CallTimeout <= 0 {
		return fmt.Errorf("upstream.callTimeout must be positive")
	}
	for _, name := range upstreamServices {
		if _, ok := c.Upstream.Services[name]; !ok {
			return fmt.Errorf("upstream.services.%s address is required", name)
		}
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rateLimit.rps must be positive when enabled")
	}
	return nil
}
