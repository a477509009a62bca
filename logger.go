package remap

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with remap-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithStage adds a stage name field to the logger.
func (l *Logger) WithStage(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("stage", name),
	}
}

// LogBuild logs pipeline construction.
func (l *Logger) LogBuild(ctx context.Context, stages, segments int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pipeline build failed",
			"stages", stages,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pipeline built",
			"stages", stages,
			"segments", segments,
		)
	}
}

// LogRangeQuery logs a range-minimum query.
func (l *Logger) LogRangeQuery(ctx context.Context, r Range, strategy RangeStrategy, pieces int, result uint64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "range query failed",
			"start", r.Start,
			"length", r.Length,
			"strategy", strategy.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "range query completed",
			"start", r.Start,
			"length", r.Length,
			"strategy", strategy.String(),
			"pieces", pieces,
			"min", result,
			"elapsed", elapsed,
		)
	}
}

// LogApplyMany logs a discrete-key minimum.
func (l *Logger) LogApplyMany(ctx context.Context, keys, distinct int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "discrete minimum failed",
			"keys", keys,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "discrete minimum completed",
			"keys", keys,
			"distinct", distinct,
		)
	}
}
