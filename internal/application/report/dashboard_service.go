package report

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/domain/report"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultSummaryTTL     = 5 * time.Minute
	defaultComputeTimeout = time.Minute
	summaryFlightKey      = "dashboard-summary"
)

// SummaryCache stores the last computed dashboard summary
type SummaryCache interface {
	Get(ctx context.Context) (*report.DashboardSummary, bool, error)
	Set(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// VersionedSummaryCache is a SummaryCache shared between processes.
// Delete advances the version, and SetIfVersion writes only while the
// version still equals the one read before the summary was loaded.
type VersionedSummaryCache interface {
	SummaryCache
	Version(ctx context.Context) (int64, error)
	SetIfVersion(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration, version int64) (bool, error)
}

// SummaryMetrics receives the figures of each freshly computed summary
type SummaryMetrics interface {
	RecordDashboardSnapshot(ctx context.Context, totalFarms int, totalArea float64)
}

// DashboardService computes the dashboard over all registered producers
type DashboardService struct {
	repo    producer.ProducerRepository
	cache   SummaryCache
	ttl     time.Duration
	metrics SummaryMetrics
	logger  *zap.Logger
	group   singleflight.Group

	computeTimeout time.Duration
	// generation advances on every Invalidate
	generation atomic.Uint64
}

// DashboardServiceOption configures a DashboardService
type DashboardServiceOption func(*DashboardService)

// WithSummaryCache enables caching of computed summaries
func WithSummaryCache(cache SummaryCache, ttl time.Duration) DashboardServiceOption {
	return func(s *DashboardService) {
		s.cache = cache
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSummaryMetrics records summary figures on each recompute
func WithSummaryMetrics(metrics SummaryMetrics) DashboardServiceOption {
	return func(s *DashboardService) {
		s.metrics = metrics
	}
}

// WithComputeTimeout bounds a shared recompute, which outlives the request that started it
func WithComputeTimeout(timeout time.Duration) DashboardServiceOption {
	return func(s *DashboardService) {
		if timeout > 0 {
			s.computeTimeout = timeout
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) DashboardServiceOption {
	return func(s *DashboardService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo producer.ProducerRepository, opts ...DashboardServiceOption) *DashboardService {
	s := &DashboardService{
		repo:           repo,
		ttl:            defaultSummaryTTL,
		computeTimeout: defaultComputeTimeout,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the dashboard, served from cache when possible.
// Concurrent cache misses share a single recompute. The recompute runs on a
// context detached from the caller, so one client going away does not fail
// the others waiting on it.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardResponse, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		} else if ok {
			return ToDashboardResponse(cached), nil
		}
	}

	// callers arriving after an Invalidate never join a load that started before it
	key := summaryFlightKey + ":" + strconv.FormatUint(s.generation.Load(), 10)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.computeTimeout)
		defer cancel()
		return s.compute(computeCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return ToDashboardResponse(res.Val.(*report.DashboardSummary)), nil
	}
}

// Refresh recomputes the summary and replaces the cached copy
func (s *DashboardService) Refresh(ctx context.Context) (*DashboardResponse, error) {
	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	return ToDashboardResponse(summary), nil
}

// Invalidate drops the cached summary. A recompute already in progress
// will not store its result.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	s.generation.Add(1)
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx)
}

func (s *DashboardService) compute(ctx context.Context) (*report.DashboardSummary, error) {
	start := time.Now()
	generation := s.generation.Load()
	version, versioned := s.cacheVersion(ctx)

	producers, err := s.repo.FindAllForSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("load producers for dashboard: %w", err)
	}

	summary := report.Summarize(producers)
	s.store(ctx, summary, generation, version, versioned)

	if s.metrics != nil {
		s.metrics.RecordDashboardSnapshot(ctx, summary.TotalFarms, summary.TotalArea.InexactFloat64())
	}

	s.logger.Debug("Dashboard summary computed",
		zap.Int("total_farms", summary.TotalFarms),
		zap.Duration("duration", time.Since(start)))
	return summary, nil
}

// cacheVersion reads the shared cache version before a load.
// ok is false when the cache is not versioned or the read failed.
func (s *DashboardService) cacheVersion(ctx context.Context) (version int64, ok bool) {
	vc, isVersioned := s.cache.(VersionedSummaryCache)
	if !isVersioned {
		return 0, false
	}
	version, err := vc.Version(ctx)
	if err != nil {
		s.logger.Warn("Dashboard cache version read failed", zap.Error(err))
		return 0, false
	}
	return version, true
}

// store caches summary unless an invalidation happened since generation was read
func (s *DashboardService) store(ctx context.Context, summary *report.DashboardSummary, generation uint64, version int64, versioned bool) {
	if s.cache == nil {
		return
	}
	if s.generation.Load() != generation {
		s.logger.Debug("Dashboard changed during recompute, result not cached")
		return
	}

	if vc, ok := s.cache.(VersionedSummaryCache); ok {
		if !versioned {
			return
		}
		stored, err := vc.SetIfVersion(ctx, summary, s.ttl, version)
		if err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.Error(err))
		} else if !stored {
			s.logger.Debug("Dashboard changed during recompute, result not cached")
		}
		return
	}

	if err := s.cache.Set(ctx, summary, s.ttl); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.Error(err))
		return
	}
	// an Invalidate may have slipped in between the check and the write
	if s.generation.Load() != generation {
		if err := s.cache.Delete(ctx); err != nil {
			s.logger.Warn("Dashboard cache delete failed", zap.Error(err))
		}
	}
}
