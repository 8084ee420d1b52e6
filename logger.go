package bootgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with bootgo-specific context.
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

// WithReplications adds a replication-count field to the logger.
func (l *Logger) WithReplications(b int) *Logger {
	return &Logger{
		Logger: l.Logger.With("replications", b),
	}
}

// LogRun logs a completed bootstrap run.
func (l *Logger) LogRun(ctx context.Context, replications int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bootstrap run failed",
			"replications", replications,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "bootstrap run completed",
			"replications", replications,
			"duration", duration,
		)
	}
}

// LogInterval logs a confidence interval computation.
func (l *Logger) LogInterval(method string, alpha float64, err error) {
	if err != nil {
		l.Error("interval computation failed",
			"method", method,
			"alpha", alpha,
			"error", err,
		)
	} else {
		l.Debug("interval computed",
			"method", method,
			"alpha", alpha,
		)
	}
}
