package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth surfacing at warn level
const slowQueryThreshold = 200 * time.Millisecond

// GormAdapter routes GORM logs through zap
type GormAdapter struct {
	logger *zap.Logger
	level  gormlogger.LogLevel
}

// NewGormAdapter creates a GORM logger backed by zap
func NewGormAdapter(logger *zap.Logger) *GormAdapter {
	return &GormAdapter{
		logger: logger,
		level:  gormlogger.Warn,
	}
}

// LogMode sets the log level
func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *a
	clone.level = level
	return &clone
}

// Info logs informational messages
func (a *GormAdapter) Info(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Info {
		a.logger.Sugar().Infof(msg, args...)
	}
}

// Warn logs warning messages
func (a *GormAdapter) Warn(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Warn {
		a.logger.Sugar().Warnf(msg, args...)
	}
}

// Error logs error messages
func (a *GormAdapter) Error(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Error {
		a.logger.Sugar().Errorf(msg, args...)
	}
}

// Trace logs SQL execution with timing
func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && a.level >= gormlogger.Error:
		a.logger.Error("sql error", append(fields, zap.Error(err))...)
	case elapsed > slowQueryThreshold && a.level >= gormlogger.Warn:
		a.logger.Warn("slow query", fields...)
	case a.level >= gormlogger.Info:
		a.logger.Debug("sql", fields...)
	}
}
