package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/retry"
)

// scanBatchSize bounds how many keys a single SCAN iteration returns during
// prefix deletion.
const scanBatchSize = 100

// redisRetryPolicy bounds the backoff for Redis operations.
var redisRetryPolicy = retry.Policy{
	Attempts: 3,
	Initial:  100 * time.Millisecond,
	Max:      2 * time.Second,
}

// isRetryableRedisError checks if the error is retryable (network/connection errors).
func isRetryableRedisError(err error) bool {
	if err == nil {
		return false
	}
	// Don't retry on cache miss or context errors
	if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Retry on connection/network errors
	return true
}

// redisCache implements a Redis-based cache.
type redisCache struct {
	logger     observability.Logger
	client     *redis.Client
	keyPrefix  string
	defaultTTL time.Duration

	hits   int64
	misses int64
}

// resolveKey applies the configured key prefix.
func (c *redisCache) resolveKey(key string) string {
	return c.keyPrefix + key
}

// newRedisCache creates a new Redis cache from a standalone Redis URL.
func newRedisCache(cfg *config.CacheConfig, logger observability.Logger) (*redisCache, error) {
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, errors.New("invalid redis URL: " + err.Error())
	}

	applyRedisPoolOptions(opts, &cfg.Redis)

	client := redis.NewClient(opts)

	if err := pingRedis(client); err != nil {
		_ = client.Close()
		return nil, errors.New("redis connection failed: " + err.Error())
	}

	keyPrefix := resolveKeyPrefix(cfg.KeyPrefix)

	c := &redisCache{
		logger:     logger,
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: cfg.DefaultTTL.Duration(),
	}

	logger.Info("redis cache initialized",
		observability.String("keyPrefix", keyPrefix),
		observability.Duration("defaultTTL", c.defaultTTL))

	return c, nil
}

// applyRedisPoolOptions applies pool and timeout configuration overrides to Redis options.
func applyRedisPoolOptions(opts *redis.Options, redisCfg *config.RedisConfig) {
	if redisCfg.PoolSize > 0 {
		opts.PoolSize = redisCfg.PoolSize
	}
	if redisCfg.ConnectTimeout > 0 {
		opts.DialTimeout = redisCfg.ConnectTimeout.Duration()
	}
	if redisCfg.ReadTimeout > 0 {
		opts.ReadTimeout = redisCfg.ReadTimeout.Duration()
	}
	if redisCfg.WriteTimeout > 0 {
		opts.WriteTimeout = redisCfg.WriteTimeout.Duration()
	}
}

// pingRedis tests the Redis connection with a timeout.
func pingRedis(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

// resolveKeyPrefix returns the key prefix, defaulting to "pgw:" if empty.
func resolveKeyPrefix(prefix string) string {
	if prefix == "" {
		return "pgw:"
	}
	return prefix
}

// Get retrieves a value from the cache with exponential backoff retry.
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := otel.Tracer(cacheTracerName).Start(ctx, "cache.Get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cache.backend", "redis"),
			attribute.String("cache.key", key),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		GetCacheMetrics().operationDuration.WithLabelValues(
			"redis", "get",
		).Observe(time.Since(start).Seconds())
	}()

	fullKey := c.resolveKey(key)

	var result []byte

	err := retry.Do(ctx, redisRetryPolicy, func() error {
		val, getErr := c.client.Get(ctx, fullKey).Bytes()
		if getErr == nil {
			result = val
			return nil
		}
		return getErr
	},
		retry.RetryIf(isRetryableRedisError),
		retry.OnAttempt(func(attempt int, err error, wait time.Duration) {
			c.logger.Debug("retrying redis get",
				observability.String("key", key),
				observability.Int("attempt", attempt))
		}),
	)

	if err == nil {
		atomic.AddInt64(&c.hits, 1)
		GetCacheMetrics().hitsTotal.WithLabelValues("redis").Inc()
		span.SetAttributes(
			attribute.Bool("cache.hit", true),
			attribute.Int("cache.value_size", len(result)),
		)
		c.logger.Debug("cache hit",
			observability.String("key", key),
			observability.Int("size", len(result)))
		return result, nil
	}

	if errors.Is(err, redis.Nil) {
		atomic.AddInt64(&c.misses, 1)
		GetCacheMetrics().missesTotal.WithLabelValues("redis").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, ErrCacheMiss
	}

	GetCacheMetrics().errorsTotal.WithLabelValues("redis", "get").Inc()
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	c.logger.Error("redis get failed",
		observability.String("key", key),
		observability.Error(err))
	return nil, err
}

// Set stores a value in the cache with exponential backoff retry.
func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, span := otel.Tracer(cacheTracerName).Start(ctx, "cache.Set",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cache.backend", "redis"),
			attribute.String("cache.key", key),
			attribute.Int("cache.value_size", len(value)),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		GetCacheMetrics().operationDuration.WithLabelValues(
			"redis", "set",
		).Observe(time.Since(start).Seconds())
	}()

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	fullKey := c.resolveKey(key)

	err := retry.Do(ctx, redisRetryPolicy, func() error {
		return c.client.Set(ctx, fullKey, value, ttl).Err()
	},
		retry.RetryIf(isRetryableRedisError),
		retry.OnAttempt(func(attempt int, err error, wait time.Duration) {
			c.logger.Debug("retrying redis set",
				observability.String("key", key),
				observability.Int("attempt", attempt))
		}),
	)

	if err == nil {
		c.logger.Debug("cache set",
			observability.String("key", key),
			observability.Duration("ttl", ttl),
			observability.Int("size", len(value)))
		return nil
	}

	GetCacheMetrics().errorsTotal.WithLabelValues("redis", "set").Inc()
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	c.logger.Error("redis set failed",
		observability.String("key", key),
		observability.Error(err))
	return err
}

// Delete removes a value from the cache with exponential backoff retry.
func (c *redisCache) Delete(ctx context.Context, key string) error {
	ctx, span := otel.Tracer(cacheTracerName).Start(ctx, "cache.Delete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cache.backend", "redis"),
			attribute.String("cache.key", key),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		GetCacheMetrics().operationDuration.WithLabelValues(
			"redis", "delete",
		).Observe(time.Since(start).Seconds())
	}()

	fullKey := c.resolveKey(key)

	err := retry.Do(ctx, redisRetryPolicy, func() error {
		return c.client.Del(ctx, fullKey).Err()
	},
		retry.RetryIf(isRetryableRedisError),
		retry.OnAttempt(func(attempt int, err error, wait time.Duration) {
			c.logger.Debug("retrying redis delete",
				observability.String("key", key),
				observability.Int("attempt", attempt))
		}),
	)

	if err == nil {
		c.logger.Debug("cache deleted",
			observability.String("key", key))
		return nil
	}

	GetCacheMetrics().errorsTotal.WithLabelValues("redis", "delete").Inc()
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	c.logger.Error("redis delete failed",
		observability.String("key", key),
		observability.Error(err))
	return err
}

// DeletePrefix removes every key starting with prefix using SCAN batches.
// SCAN is cursor-based so the server is never blocked the way KEYS would
// block it, but the cost is still proportional to the size of the key space.
func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	ctx, span := otel.Tracer(cacheTracerName).Start(ctx, "cache.DeletePrefix",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cache.backend", "redis"),
			attribute.String("cache.prefix", prefix),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		GetCacheMetrics().operationDuration.WithLabelValues(
			"redis", "delete_prefix",
		).Observe(time.Since(start).Seconds())
	}()

	match := c.resolveKey(prefix) + "*"

	var deleted int
	err := retry.Do(ctx, redisRetryPolicy, func() error {
		deleted = 0
		var cursor uint64
		for {
			keys, next, scanErr := c.client.Scan(ctx, cursor, match, scanBatchSize).Result()
			if scanErr != nil {
				return scanErr
			}
			if len(keys) > 0 {
				if delErr := c.client.Del(ctx, keys...).Err(); delErr != nil {
					return delErr
				}
				deleted += len(keys)
			}
			cursor = next
			if cursor == 0 {
				return nil
			}
		}
	},
		retry.RetryIf(isRetryableRedisError),
		retry.OnAttempt(func(attempt int, err error, wait time.Duration) {
			c.logger.Debug("retrying redis delete prefix",
				observability.String("prefix", prefix),
				observability.Int("attempt", attempt))
		}),
	)

	if err == nil {
		span.SetAttributes(attribute.Int("cache.deleted", deleted))
		if deleted > 0 {
			c.logger.Debug("cache prefix deleted",
				observability.String("prefix", prefix),
				observability.Int("removed", deleted))
		}
		return nil
	}

	GetCacheMetrics().errorsTotal.WithLabelValues("redis", "delete_prefix").Inc()
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	c.logger.Error("redis delete prefix failed",
		observability.String("prefix", prefix),
		observability.Error(err))
	return err
}

// Exists checks if a key exists in the cache with exponential backoff retry.
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	ctx, span := otel.Tracer(cacheTracerName).Start(ctx, "cache.Exists",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cache.backend", "redis"),
			attribute.String("cache.key", key),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		GetCacheMetrics().operationDuration.WithLabelValues(
			"redis", "exists",
		).Observe(time.Since(start).Seconds())
	}()

	fullKey := c.resolveKey(key)

	var result int64

	err := retry.Do(ctx, redisRetryPolicy, func() error {
		var existsErr error
		result, existsErr = c.client.Exists(ctx, fullKey).Result()
		return existsErr
	},
		retry.RetryIf(isRetryableRedisError),
		retry.OnAttempt(func(attempt int, err error, wait time.Duration) {
			c.logger.Debug("retrying redis exists",
				observability.String("key", key),
				observability.Int("attempt", attempt))
		}),
	)

	if err == nil {
		span.SetAttributes(attribute.Bool("cache.exists", result > 0))
		return result > 0, nil
	}

	GetCacheMetrics().errorsTotal.WithLabelValues("redis", "exists").Inc()
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	c.logger.Error("redis exists failed",
		observability.String("key", key),
		observability.Error(err))
	return false, err
}

// Close closes the Redis connection.
func (c *redisCache) Close() error {
	c.logger.Info("redis cache closing")
	return c.client.Close()
}

// Stats returns cache statistics.
func (c *redisCache) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
	}
}
