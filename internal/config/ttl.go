package config

import (
	"sync/atomic"
	"time"
)

// TTLPolicy is a concurrency-safe holder for the live TTL policy. The
// config watcher swaps the policy on reload; services read it on every
// operation, so new TTLs apply without a restart.
type TTLPolicy struct {
	v atomic.Pointer[TTLPolicyConfig]
}

// NewTTLPolicy creates a policy holder with the given initial values.
func NewTTLPolicy(cfg TTLPolicyConfig) *TTLPolicy {
	p := &TTLPolicy{}
	p.Store(cfg)
	return p
}

// Store atomically replaces the policy.
func (p *TTLPolicy) Store(cfg TTLPolicyConfig) {
	p.v.Store(&cfg)
}

// Snapshot returns the current policy values.
func (p *TTLPolicy) Snapshot() TTLPolicyConfig {
	return *p.v.Load()
}

// List returns the TTL for paginated list views.
func (p *TTLPolicy) List() time.Duration {
	return p.v.Load().List.Duration()
}

// Detail returns the TTL for single-entity detail views.
func (p *TTLPolicy) Detail() time.Duration {
	return p.v.Load().Detail.Duration()
}

// Monthly returns the TTL for monthly statistics buckets.
func (p *TTLPolicy) Monthly() time.Duration {
	return p.v.Load().Monthly.Duration()
}

// Yearly returns the TTL for yearly aggregates.
func (p *TTLPolicy) Yearly() time.Duration {
	return p.v.Load().Yearly.Duration()
}
