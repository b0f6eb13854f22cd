// Package observability provides logging, metrics, and tracing for the
// payment gateway. The Logger interface wraps zap so that packages can log
// without depending on a concrete logging backend, and context helpers carry
// request and trace identifiers across the request path.
package observability
