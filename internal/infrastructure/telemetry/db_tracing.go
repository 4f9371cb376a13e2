package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for query tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // keep bound variables in db.statement
	SlowQueryThresh time.Duration // spans above this get db.slow_query=true
	DBName          string
}

// DefaultDBTracingConfig returns tracing disabled with a 200ms slow threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "agro",
	}
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus slow query annotation.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerTimingCallbacks(db, slowQueryAnnotator(cfg.SlowQueryThresh)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func registerTimingCallbacks(db *gorm.DB, after func(*gorm.DB)) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("agro_timing:before_create", markQueryStart); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("agro_timing:after_create", after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("agro_timing:before_query", markQueryStart); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("agro_timing:after_query", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("agro_timing:before_update", markQueryStart); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("agro_timing:after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("agro_timing:before_delete", markQueryStart); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("agro_timing:after_delete", after); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("agro_timing:before_row", markQueryStart); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("agro_timing:after_row", after); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("agro_timing:before_raw", markQueryStart); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("agro_timing:after_raw", after)
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func slowQueryAnnotator(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
