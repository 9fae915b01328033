package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"

	"github.com/eduflow/eduflow-server/pkg/metrics"
)

// QueryLogger implements gorm's logger interface with structured logging and metrics.
type QueryLogger struct {
	logger               *slog.Logger
	slowThreshold        time.Duration
	logLevel             logger.LogLevel
	ignoreRecordNotFound bool
}

// NewQueryLogger creates a GORM logger that reports slow queries and errors via slog.
func NewQueryLogger(appLogger *slog.Logger, slowThreshold time.Duration) logger.Interface {
	return &QueryLogger{
		logger:               appLogger,
		slowThreshold:        slowThreshold,
		logLevel:             logger.Warn,
		ignoreRecordNotFound: true,
	}
}

func (l *QueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

func (l *QueryLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *QueryLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *QueryLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	operation, table := classifySQL(sql)
	metrics.RecordDBQuery(operation, table, elapsed)

	switch {
	case err != nil && l.logLevel >= logger.Error && (!l.ignoreRecordNotFound || err.Error() != "record not found"):
		l.logger.ErrorContext(ctx, "database query error",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
			slog.String("sql", sql),
			slog.Int64("rows", rows),
		)
	case elapsed > l.slowThreshold && l.slowThreshold != 0 && l.logLevel >= logger.Warn:
		l.logger.WarnContext(ctx, "slow query detected",
			slog.Duration("elapsed", elapsed),
			slog.Duration("threshold", l.slowThreshold),
			slog.String("operation", operation),
			slog.String("table", table),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case l.logLevel >= logger.Info:
		l.logger.DebugContext(ctx, "database query",
			slog.Duration("elapsed", elapsed),
			slog.String("operation", operation),
			slog.String("table", table),
			slog.Int64("rows", rows),
		)
	}
}

// classifySQL extracts the operation keyword and target table from a query.
// A heuristic for labels only; it does not need to parse every statement.
func classifySQL(sql string) (string, string) {
	trimmed := strings.TrimSpace(sql)

	operation := "UNKNOWN"
	if idx := strings.IndexByte(trimmed, ' '); idx > 0 {
		operation = strings.ToUpper(trimmed[:idx])
	} else if trimmed != "" {
		operation = strings.ToUpper(trimmed)
	}

	upper := strings.ToUpper(trimmed)
	table := "unknown"
	for _, marker := range []string{" FROM ", " INTO ", "UPDATE "} {
		idx := strings.Index(upper, marker)
		if idx == -1 {
			continue
		}

		rest := trimmed[idx+len(marker):]
		rest = strings.TrimLeft(rest, `"`)
		end := strings.IndexFunc(rest, func(r rune) bool {
			switch r {
			case ' ', ',', ';', '"', '(', '\n':
				return true
			}
			return false
		})
		if end == -1 {
			end = len(rest)
		}
		if end > 0 {
			table = rest[:end]
		}
		break
	}

	return operation, table
}
