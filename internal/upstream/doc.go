// Package upstream implements the instrumented cache-aside call facade
// that every gateway operation runs through. One invocation opens a span,
// consults the cache, dials the upstream service with trace context
// injected, classifies failures, transforms the response, populates the
// cache, and purges stale entries on mutations.
//
// Entity packages parameterize the facade with an Operation value and two
// closures (the remote call and the response transform); the flow itself
// is written once here.
package upstream
