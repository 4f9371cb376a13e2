package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agro/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DashboardSummaryKey is the Redis key holding the JSON encoded summary
const DashboardSummaryKey = "agro:dashboard:summary"

// versionSuffix names the counter Delete advances next to the summary key
const versionSuffix = ":version"

var errVersionChanged = errors.New("dashboard cache version changed")

// RedisDashboardCache stores the dashboard summary in Redis so that every
// API instance shares the same snapshot
type RedisDashboardCache struct {
	client     *redis.Client
	ownsClient bool
	key        string
	logger     *zap.Logger
}

// RedisDashboardCacheOption configures a RedisDashboardCache
type RedisDashboardCacheOption func(*RedisDashboardCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisDashboardCacheOption {
	return func(c *RedisDashboardCache) {
		c.logger = logger
	}
}

// WithKey overrides the Redis key, mostly useful to isolate tests
func WithKey(key string) RedisDashboardCacheOption {
	return func(c *RedisDashboardCache) {
		c.key = key
	}
}

// NewRedisDashboardCache connects to Redis and verifies the connection
func NewRedisDashboardCache(ctx context.Context, opts *redis.Options, cacheOpts ...RedisDashboardCacheOption) (*RedisDashboardCache, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisDashboardCacheWithClient(client, cacheOpts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisDashboardCacheWithClient wraps an existing client.
// The caller keeps ownership of the client.
func NewRedisDashboardCacheWithClient(client *redis.Client, opts ...RedisDashboardCacheOption) *RedisDashboardCache {
	c := &RedisDashboardCache{
		client: client,
		key:    DashboardSummaryKey,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get reads the cached summary. A missing key is a miss, not an error.
func (c *RedisDashboardCache) Get(ctx context.Context) (*report.DashboardSummary, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read dashboard summary from cache: %w", err)
	}

	var summary report.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("Dropping corrupted dashboard cache entry", zap.Error(err))
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, nil
	}
	return &summary, true, nil
}

// Set stores summary with the given ttl (0 means no expiry)
func (c *RedisDashboardCache) Set(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard summary to cache: %w", err)
	}
	return nil
}

// Version returns the invalidation counter. A missing counter is version 0.
func (c *RedisDashboardCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read dashboard cache version: %w", err)
	}
	return version, nil
}

// SetIfVersion stores summary only while the counter still equals version.
// The write is watched, so a Delete from any instance in between aborts it.
func (c *RedisDashboardCache) SetIfVersion(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration, version int64) (bool, error) {
	if summary == nil {
		return false, nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return false, fmt.Errorf("failed to marshal dashboard summary: %w", err)
	}

	versionKey := c.versionKey()
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return errVersionChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, data, ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errVersionChanged), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("failed to write dashboard summary to cache: %w", err)
	}
}

// Delete removes the cached summary and advances the version
func (c *RedisDashboardCache) Delete(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.key)
		pipe.Incr(ctx, c.versionKey())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete dashboard summary from cache: %w", err)
	}
	return nil
}

func (c *RedisDashboardCache) versionKey() string {
	return c.key + versionSuffix
}

// Ping checks the Redis connection
func (c *RedisDashboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client if this cache created it
func (c *RedisDashboardCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
