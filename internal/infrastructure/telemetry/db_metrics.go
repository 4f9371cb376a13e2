package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DBPoolMetrics reports database/sql pool statistics on every collection.
type DBPoolMetrics struct {
	registration metric.Registration
	logger       *zap.Logger
}

// RegisterDBPoolMetrics observes sqlDB.Stats() through asynchronous gauges.
// Call Unregister on shutdown.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB, logger *zap.Logger) (*DBPoolMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if sqlDB == nil {
		return nil, fmt.Errorf("telemetry: sql.DB cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	connections, err := meter.Int64ObservableGauge("agro_db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connections}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool connections gauge: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("agro_db_pool_max_open",
		metric.WithDescription("Maximum open connections allowed"),
		metric.WithUnit("{connections}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool max open gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("agro_db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{waits}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool wait counter: %w", err)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, connections, maxOpen, waits)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool callback: %w", err)
	}

	logger.Debug("Database pool metrics registered")
	return &DBPoolMetrics{registration: reg, logger: logger}, nil
}

// Unregister stops observing the pool.
func (m *DBPoolMetrics) Unregister() error {
	if m == nil || m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
