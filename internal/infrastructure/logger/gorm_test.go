package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT * FROM producers", 3 }

	t.Run("errors are logged at error level", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn)

		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("relation does not exist"))

		assert.Equal(t, 1, recorded.FilterMessage("Query failed").Len())
	})

	t.Run("record not found is ignored by default", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn)

		l.Trace(context.Background(), time.Now(), sqlFn, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("slow queries are logged at warn level", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

		entries := recorded.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
			assert.Equal(t, "Slow query", entries[0].Message)
		}
	})

	t.Run("record not found is reported when asked", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, WithIgnoreRecordNotFoundError(false))

		l.Trace(context.Background(), time.Now(), sqlFn, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 1, recorded.FilterMessage("Query failed").Len())
	})

	t.Run("long statements are truncated", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Info, WithMaxSQLLength(6))

		l.Trace(context.Background(), time.Now(), sqlFn, nil)

		entries := recorded.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "SELECT...", entries[0].ContextMap()["sql"])
		}
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn).LogMode(gormlogger.Silent)

		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("x"))

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("includes request id from context", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Info)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

		l.Trace(ctx, time.Now(), sqlFn, nil)

		entries := recorded.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
		}
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel(" ERROR "))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
