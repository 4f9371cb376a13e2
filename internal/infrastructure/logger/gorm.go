package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	defaultMaxSQLLength  = 2048
)

// GormLogger routes gorm statements to zap. Every statement carries the
// request and trace ids found on the query context.
type GormLogger struct {
	logger          *zap.Logger
	sugar           *zap.SugaredLogger
	level           gormlogger.LogLevel
	slowThreshold   time.Duration
	maxSQLLength    int
	logNotFoundRows bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow.
// Zero disables slow query reporting.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowThreshold = threshold }
}

// WithIgnoreRecordNotFoundError controls whether lookups that match no row are
// reported as errors. They are ignored by default since the repository turns
// them into NOT_FOUND.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.logNotFoundRows = !ignore }
}

// WithMaxSQLLength truncates logged statements, which keeps multi-row harvest
// upserts readable. Zero or less disables truncation.
func WithMaxSQLLength(n int) GormLoggerOption {
	return func(l *GormLogger) { l.maxSQLLength = n }
}

// NewGormLogger creates a gorm logger writing to zapLogger under the "gorm" name
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	named := zapLogger.Named("gorm")
	l := &GormLogger{
		logger:        named,
		sugar:         named.Sugar(),
		level:         level,
		slowThreshold: defaultSlowThreshold,
		maxSQLLength:  defaultMaxSQLLength,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogMode returns a copy logging at level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.sugar.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.sugar.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.sugar.Errorf(msg, data...)
	}
}

// Trace logs one executed statement: failures at error, slow statements at
// warn and everything else at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && (l.logNotFoundRows || !errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var lvl zapcore.Level
	var msg string
	switch {
	case failed && l.level >= gormlogger.Error:
		lvl, msg = zapcore.ErrorLevel, "Query failed"
	case slow && l.level >= gormlogger.Warn:
		lvl, msg = zapcore.WarnLevel, "Slow query"
	case err == nil && l.level >= gormlogger.Info:
		lvl, msg = zapcore.DebugLevel, "Query"
	default:
		return
	}

	ce := l.logger.Check(lvl, msg)
	if ce == nil {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", l.truncate(sql)),
	}
	if slow {
		fields = append(fields, zap.Duration("slow_threshold", l.slowThreshold))
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if failed {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

func (l *GormLogger) truncate(sql string) string {
	if l.maxSQLLength <= 0 || len(sql) <= l.maxSQLLength {
		return sql
	}
	return sql[:l.maxSQLLength] + "..."
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"warn":   gormlogger.Warn,
	"info":   gormlogger.Info,
	"debug":  gormlogger.Info,
}

// MapGormLogLevel maps the application log level to a gorm level, defaulting to Warn
func MapGormLogLevel(level string) gormlogger.LogLevel {
	if lvl, ok := gormLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return gormlogger.Warn
}
