package rediscache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache stores rendered report responses in Redis for a short
// TTL. Reports aggregate over whole windows, so briefly stale data is
// acceptable; a cache failure only costs a recomputation.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewReportCache connects to Redis. A connection failure is logged but
// not fatal; callers should treat a nil return from Get as a miss.
func NewReportCache(redisURL string, ttl time.Duration, logger *slog.Logger) (*ReportCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	cache := &ReportCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "report_cache"),
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		cache.logger.Warn("unable to reach redis", "error", err)
	} else {
		cache.logger.Info("connected to redis")
	}

	return cache, nil
}

// Get returns the cached payload for a key, or nil on a miss. Errors
// are treated as misses.
func (c *ReportCache) Get(ctx context.Context, key string) []byte {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil
	}
	return payload
}

// Set stores a payload under the cache TTL. Failures are logged and
// swallowed.
func (c *ReportCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Ping verifies Redis connectivity.
func (c *ReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client.
func (c *ReportCache) Close() error {
	return c.client.Close()
}
