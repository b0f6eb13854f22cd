package config

import (
	"fmt"
	"time"
)

// Cache backend types.
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// CacheConfig configures the cache engine.
type CacheConfig struct {
	// Enabled turns caching on or off. With caching disabled every lookup
	// is a miss and every store is a no-op.
	Enabled bool `yaml:"enabled"`

	// Type selects the backend: "memory" or "redis".
	Type string `yaml:"type"`

	// KeyPrefix is prepended to every stored key.
	KeyPrefix string `yaml:"keyPrefix"`

	// DefaultTTL applies when an operation class does not set its own TTL.
	DefaultTTL Duration `yaml:"defaultTTL"`

	// MaxEntries bounds the in-memory backend. Ignored for Redis.
	MaxEntries int `yaml:"maxEntries"`

	// TTL holds the per-operation-class expiry policy.
	TTL TTLPolicyConfig `yaml:"ttl"`

	// Redis configures the Redis backend.
	Redis RedisConfig `yaml:"redis"`
}

// TTLPolicyConfig is the per-operation-class TTL policy. Faster-changing,
// higher-cardinality views get shorter TTLs.
type TTLPolicyConfig struct {
	// List applies to paginated list views.
	List Duration `yaml:"list"`

	// Detail applies to single-entity detail views.
	Detail Duration `yaml:"detail"`

	// Monthly applies to monthly statistics buckets.
	Monthly Duration `yaml:"monthly"`

	// Yearly applies to slow-changing yearly aggregates.
	Yearly Duration `yaml:"yearly"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	URL            string   `yaml:"url"`
	PoolSize       int      `yaml:"poolSize"`
	ConnectTimeout Duration `yaml:"connectTimeout"`
	ReadTimeout    Duration `yaml:"readTimeout"`
	WriteTimeout   Duration `yaml:"writeTimeout"`
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:    true,
		Type:       CacheTypeMemory,
		KeyPrefix:  "pgw:",
		DefaultTTL: Duration(10 * time.Minute),
		MaxEntries: 10000,
		TTL: TTLPolicyConfig{
			List:    Duration(10 * time.Minute),
			Detail:  Duration(10 * time.Minute),
			Monthly: Duration(30 * time.Minute),
			Yearly:  Duration(2 * time.Hour),
		},
	}
}

// Validate checks the cache configuration.
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Type {
	case CacheTypeMemory, "":
	case CacheTypeRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("cache.redis.url is required for redis cache")
		}
	default:
		return fmt.Errorf("unknown cache type %q", c.Type)
	}
	if c.DefaultTTL < 0 {
		return fmt.Errorf("cache.defaultTTL must not be negative")
	}
	return nil
}
