// Package metrics provides Prometheus metrics for the payment gateway.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values for upstream call metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for the gateway. All collectors are
// registered on a private registry so the /metrics endpoint only exposes
// what the gateway owns.
type Metrics struct {
	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec
	httpRequestsTotal       *prometheus.CounterVec
	httpRequestDuration     *prometheus.HistogramVec
	startTime               prometheus.Gauge
	registry                *prometheus.Registry
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "gateway"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream service calls",
		},
		[]string{"class", "verb", "outcome"},
	)

	m.upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream service call duration in seconds",
			Buckets: []float64{
				.001, .005, .01, .025, .05,
				.1, .25, .5, 1, 2.5, 5, 10,
			},
		},
		[]string{"class", "verb", "outcome"},
	)

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets: []float64{
				.001, .005, .01, .025, .05,
				.1, .25, .5, 1, 2.5, 5, 10,
			},
		},
		[]string{"method", "route", "status"},
	)

	m.startTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "start_time_seconds",
			Help:      "Start time of the gateway in unix seconds",
		},
	)

	m.registry.MustRegister(
		m.upstreamRequestsTotal,
		m.upstreamRequestDuration,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.startTime,
	)
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(
		collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{},
		),
	)

	m.startTime.SetToCurrentTime()

	return m
}

// InitVecMetrics pre-populates common label combinations with zero values so
// that Vec metrics appear in /metrics output immediately after startup.
// Prometheus *Vec types only emit metric lines after WithLabelValues() is
// called at least once. Idempotent.
func (m *Metrics) InitVecMetrics(classes []string) {
	for _, class := range classes {
		for _, verb := range []string{"GET", "POST", "PUT", "DELETE"} {
			for _, outcome := range []string{OutcomeSuccess, OutcomeError} {
				m.upstreamRequestsTotal.WithLabelValues(class, verb, outcome)
				m.upstreamRequestDuration.WithLabelValues(class, verb, outcome)
			}
		}
	}
}

// RecordUpstream records a completed upstream service call keyed by
// operation class, HTTP-style verb and outcome.
func (m *Metrics) RecordUpstream(class, verb, outcome string, duration time.Duration) {
	m.upstreamRequestsTotal.WithLabelValues(class, verb, outcome).Inc()
	m.upstreamRequestDuration.WithLabelValues(class, verb, outcome).Observe(duration.Seconds())
}

// RecordHTTPRequest records a completed HTTP request. The route parameter
// must be the matched route pattern, not the raw path, to keep label
// cardinality bounded.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, route, statusStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, route, statusStr).Observe(duration.Seconds())
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterCollector registers an additional collector with the private
// registry so external packages (e.g. cache metrics) appear on the same
// /metrics endpoint.
func (m *Metrics) RegisterCollector(c prometheus.Collector) error {
	return m.registry.Register(c)
}
