package ygggo_dbkit

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	mysql "github.com/go-sql-driver/mysql"
)

var defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SetDefaultLogger replaces the logger used by free functions (ValidateTable,
// SaveTable, SaveMapping) and newly constructed pools. Intended to be called
// once by the composing application at startup.
func SetDefaultLogger(logger *slog.Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// EnableLogging enables or disables structured logging for this pool
func (p *Pool) EnableLogging(enabled bool) {
	if p == nil {
		return
	}
	p.loggingEnabled = enabled
	if enabled && p.logger == nil {
		p.logger = defaultLogger
	}
}

// SetLogger sets a custom logger for this pool
func (p *Pool) SetLogger(logger *slog.Logger) {
	if p == nil {
		return
	}
	p.logger = logger
}

// log emits a record through the pool logger if logging is enabled.
func (p *Pool) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if p == nil || !p.loggingEnabled || p.logger == nil {
		return
	}
	p.logger.LogAttrs(ctx, level, msg, attrs...)
}

// logQuery logs statement execution with structured fields.
func (p *Pool) logQuery(ctx context.Context, operation, query string, args []any, rows int64, duration time.Duration, err error) {
	if p == nil || !p.loggingEnabled || p.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("query", query),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}

	// Argument values may be sensitive; log only the count.
	if len(args) > 0 {
		attrs = append(attrs, slog.Int("arg_count", len(args)))
	}

	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
			slog.String("error_class", Classify(err).String()),
		)
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) {
			attrs = append(attrs, slog.Int("error_code", int(mysqlErr.Number)))
		}
		p.logger.LogAttrs(ctx, slog.LevelError, "database query executed", attrs...)
		return
	}

	attrs = append(attrs,
		slog.String("status", "success"),
		slog.Int64("rows", rows),
	)
	p.logger.LogAttrs(ctx, slog.LevelInfo, "database query executed", attrs...)
}

// logConnection logs connection lifecycle events.
func (p *Pool) logConnection(ctx context.Context, event string, duration time.Duration, err error) {
	if p == nil || !p.loggingEnabled || p.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("event", event),
		slog.String("database", p.database),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}

	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		p.logger.LogAttrs(ctx, slog.LevelError, "database connection event", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "success"))
	p.logger.LogAttrs(ctx, slog.LevelInfo, "database connection event", attrs...)
}

// PoolStats represents connection pool statistics
type PoolStats struct {
	ActiveConnections int
	IdleConnections   int
	TotalConnections  int
	MaxOpen           int
}

// Stats returns current pool statistics
func (p *Pool) Stats() PoolStats {
	if p == nil || p.db == nil {
		return PoolStats{}
	}

	stats := p.db.Stats()
	return PoolStats{
		ActiveConnections: stats.InUse,
		IdleConnections:   stats.Idle,
		TotalConnections:  stats.OpenConnections,
		MaxOpen:           stats.MaxOpenConnections,
	}
}
