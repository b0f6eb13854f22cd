package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability/metrics"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/ratelimit"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a unique id, honoring an incoming
// X-Request-ID header, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := observability.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

// AccessLog emits one structured log line per request.
func AccessLog(logger observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []observability.Field{
			observability.String("method", c.Request.Method),
			observability.String("path", c.Request.URL.Path),
			observability.Int("status", c.Writer.Status()),
			observability.Duration("duration", time.Since(start)),
			observability.String("client_ip", c.ClientIP()),
		}
		if requestID := observability.RequestIDFromContext(c.Request.Context()); requestID != "" {
			fields = append(fields, observability.String("request_id", requestID))
		}
		if span := trace.SpanContextFromContext(c.Request.Context()); span.HasTraceID() {
			fields = append(fields, observability.String("trace_id", span.TraceID().String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("http request", fields...)
		} else {
			logger.Info("http request", fields...)
		}
	}
}

// RateLimit rejects requests over the per-client budget with 429.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errmap.ErrorResponse{
				Status:  "error",
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// HTTPMetrics records request count and latency labeled by the matched
// route pattern, keeping label cardinality bounded.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
