package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/coderr/pkg/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapLogger sends gorm output to the request logger found in the query context.
// Missing rows and unique-key rejections are not logged as failures.
type zapLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newZapLogger(level logger.LogLevel) logger.Interface {
	return &zapLogger{level: level, slow: slowQueryThreshold}
}

func (z *zapLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *z
	c.level = level
	return &c
}

func (z *zapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= logger.Info {
		logging.FromContext(ctx).Info(fmt.Sprintf(msg, data...), zap.String("component", "gorm"))
	}
}

func (z *zapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= logger.Warn {
		logging.FromContext(ctx).Warn(fmt.Sprintf(msg, data...), zap.String("component", "gorm"))
	}
}

func (z *zapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= logger.Error {
		logging.FromContext(ctx).Error(fmt.Sprintf(msg, data...), zap.String("component", "gorm"))
	}
}

func (z *zapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if z.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && z.level >= logger.Error && !expected(err):
		sql, rows := fc()
		logging.FromContext(ctx).Error("db_query_failed",
			zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed), zap.Error(err))
	case z.slow > 0 && elapsed > z.slow && z.level >= logger.Warn:
		sql, rows := fc()
		logging.FromContext(ctx).Warn("db_slow_query",
			zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case z.level >= logger.Info:
		sql, rows := fc()
		logging.FromContext(ctx).Debug("db_query",
			zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}

func expected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}
