package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bloodbank/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type gormLogger struct {
	log   logger.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

// NewGormLogger routes GORM's diagnostics into the application logger.
// Statements slower than slow are reported at warn level; zero disables that.
func NewGormLogger(log logger.Logger, slow time.Duration) gormlogger.Interface {
	return &gormLogger{log: log, slow: slow, level: gormlogger.Info}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *gormLogger) Info(ctx context.Context, message string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info("db: " + fmt.Sprintf(message, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, message string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn("db: " + fmt.Sprintf(message, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, message string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error("db: " + fmt.Sprintf(message, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		if IsUniqueViolation(err) || IsForeignKeyViolation(err) {
			l.log.Debug("db: constraint rejected statement", "err", err, "sql", sql, "rows", rows)
			return
		}
		l.log.InternalError("db: statement failed", err, "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn("db: slow statement", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds(), "threshold_ms", l.slow.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debug("db: statement", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
