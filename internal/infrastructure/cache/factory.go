package cache

import (
	"context"
	"fmt"

	"github.com/agro/backend/internal/application/report"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	_ report.SummaryCache          = (*InMemoryDashboardCache)(nil)
	_ report.VersionedSummaryCache = (*RedisDashboardCache)(nil)
	_ StatsReporter                = (*InMemoryDashboardCache)(nil)
)

// Closer is implemented by caches holding external connections
type Closer interface {
	Close() error
}

// StatsReporter is implemented by caches that count their own hits and misses
type StatsReporter interface {
	Stats() (hits, misses int64)
}

// NewDashboardCache builds the cache selected by cfg.Cache.Driver.
// It returns nil for the "none" driver. When Redis is unreachable the
// in-memory cache is used instead and a warning is logged.
func NewDashboardCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (report.SummaryCache, error) {
	switch cfg.Cache.Driver {
	case "none":
		return nil, nil
	case "", "memory":
		return NewInMemoryDashboardCache(), nil
	case "redis":
		c, err := NewRedisDashboardCache(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, WithCacheLogger(logger.Named("dashboard_cache")))
		if err != nil {
			if cfg.IsProduction() {
				return nil, err
			}
			logger.Warn("Redis unavailable, falling back to in-memory dashboard cache", zap.Error(err))
			return NewInMemoryDashboardCache(), nil
		}
		logger.Info("Using Redis dashboard cache", zap.String("addr", cfg.Redis.Addr()))
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}
