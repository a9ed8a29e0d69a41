package hepgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with hepgo-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithHandle adds a handle field to the logger.
func (l *Logger) WithHandle(h Handle) *Logger {
	return &Logger{
		Logger: l.Logger.With("handle", h.String()),
	}
}

// WithPath adds a stream path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogOpen logs the opening of a reader or writer.
func (l *Logger) LogOpen(ctx context.Context, mode, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"mode", mode,
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "stream opened",
			"mode", mode,
			"path", path,
		)
	}
}

// LogRead logs an event read. End of stream is logged at debug level.
func (l *Logger) LogRead(ctx context.Context, eventNumber, particles, vertices int, err error) {
	if err != nil {
		l.WarnContext(ctx, "read failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "event read",
			"event", eventNumber,
			"particles", particles,
			"vertices", vertices,
		)
	}
}

// LogWrite logs an event write.
func (l *Logger) LogWrite(ctx context.Context, eventNumber, particles, vertices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"event", eventNumber,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "event written",
			"event", eventNumber,
			"particles", particles,
			"vertices", vertices,
		)
	}
}

// LogClose logs the closing of a reader or writer.
func (l *Logger) LogClose(ctx context.Context, mode string, events int, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed",
			"mode", mode,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "stream closed",
			"mode", mode,
			"events", events,
			"bytes", bytes,
		)
	}
}

// LogContractViolation logs a call rejected for a null, stale or mistyped
// handle, an out-of-range index or a double close.
func (l *Logger) LogContractViolation(ctx context.Context, op string, h Handle, err error) {
	l.WarnContext(ctx, "contract violation",
		"op", op,
		"handle", h.String(),
		"error", err,
	)
}
