package zetascan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hunt-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCatalog adds a catalog field to the logger.
func (l *Logger) WithCatalog(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("catalog", name),
	}
}

// WithZeros adds a zero-count field to the logger.
func (l *Logger) WithZeros(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("zeros", count),
	}
}

// WithSession adds a session ID field to the logger.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("session", id),
	}
}

// LogLoad logs a zero-sequence load.
func (l *Logger) LogLoad(ctx context.Context, source string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"source", source,
			"zeros", count,
		)
	}
}

// LogHunt logs a catalog hunt.
func (l *Logger) LogHunt(ctx context.Context, catalog string, zeros int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "hunt failed",
			"catalog", catalog,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "hunt completed",
			"catalog", catalog,
			"zeros", zeros,
			"elapsed", elapsed,
		)
	}
}

// LogSimulation logs a Monte Carlo study.
func (l *Logger) LogSimulation(ctx context.Context, kind string, simulations int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "simulation failed",
			"kind", kind,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "simulation completed",
			"kind", kind,
			"simulations", simulations,
		)
	}
}

// LogReport logs a report write.
func (l *Logger) LogReport(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "report failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report written",
			"name", name,
		)
	}
}
