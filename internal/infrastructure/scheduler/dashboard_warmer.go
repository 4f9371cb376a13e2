package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agro/backend/internal/application/report"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultJobTimeout = 2 * time.Minute

// DashboardRefresher recomputes the dashboard summary and refreshes its cache
type DashboardRefresher interface {
	Refresh(ctx context.Context) (*report.DashboardResponse, error)
}

// DashboardWarmerConfig holds the warmer schedule
type DashboardWarmerConfig struct {
	// Schedule is a standard 5-field cron expression
	Schedule string
	// JobTimeout bounds a single refresh
	JobTimeout time.Duration
	// WarmOnStart runs one refresh as soon as the warmer starts
	WarmOnStart bool
}

// DashboardWarmer periodically recomputes the dashboard so that API reads hit a warm cache
type DashboardWarmer struct {
	cron      *cron.Cron
	refresher DashboardRefresher
	config    DashboardWarmerConfig
	logger    *zap.Logger
	entryID   cron.EntryID

	mu      sync.Mutex
	running bool
	lastRun time.Time
	lastErr error
}

// NewDashboardWarmer validates the schedule and creates a stopped warmer
func NewDashboardWarmer(refresher DashboardRefresher, cfg DashboardWarmerConfig, logger *zap.Logger) (*DashboardWarmer, error) {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = defaultJobTimeout
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("%w: dashboard cron %q: %v", ErrInvalidConfig, cfg.Schedule, err)
	}

	logger = logger.Named("dashboard_warmer")
	cl := cronLogger{logger.Sugar()}
	w := &DashboardWarmer{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		refresher: refresher,
		config:    cfg,
		logger:    logger,
	}

	id, err := w.cron.AddFunc(cfg.Schedule, func() { _ = w.RunOnce(context.Background()) })
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	w.entryID = id
	return w, nil
}

// Start begins the schedule
func (w *DashboardWarmer) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	w.cron.Start()
	w.logger.Info("Dashboard warmer started",
		zap.String("schedule", w.config.Schedule),
		zap.Time("next_run", w.NextRun()),
	)

	if w.config.WarmOnStart {
		go func() { _ = w.RunOnce(ctx) }()
	}
	return nil
}

// Stop halts the schedule and waits for a running refresh or ctx expiry
func (w *DashboardWarmer) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	done := w.cron.Stop()
	select {
	case <-done.Done():
		w.logger.Info("Dashboard warmer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce refreshes the dashboard immediately
func (w *DashboardWarmer) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.config.JobTimeout)
	defer cancel()

	start := time.Now()
	summary, err := w.refresher.Refresh(ctx)

	w.mu.Lock()
	w.lastRun = start
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("Dashboard refresh failed", zap.Error(err))
		return err
	}
	w.logger.Info("Dashboard refreshed",
		zap.Int("total_farms", summary.TotalFarms),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// NextRun returns the next scheduled refresh, zero when stopped
func (w *DashboardWarmer) NextRun() time.Time {
	return w.cron.Entry(w.entryID).Next
}

// LastRun returns when the last refresh started and how it ended
func (w *DashboardWarmer) LastRun() (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun, w.lastErr
}

// cronLogger adapts zap to the cron.Logger interface
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
