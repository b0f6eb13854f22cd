// Package cache provides the gateway's cache engine: a TTL key/value store
// with literal-key lookups and tagged exact-key or prefix-pattern bulk
// deletion. Two backends are provided, Redis for deployments and an
// in-memory LRU for development and tests, plus a disabled backend that
// turns every lookup into a miss.
//
// Caching here is a performance optimization, never a correctness
// dependency: callers must treat a failed read as a miss and a failed write
// as a no-op.
package cache
