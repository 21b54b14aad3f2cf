package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

// TraceIDKey is the context key used to carry a request trace ID.
const TraceIDKey contextKey = "traceID"

// Logger is the structured logging interface used across the application.
// Error-returning variants log the message and hand back an error so call
// sites can `return log.Err(...)` in one statement.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)

	// Error logs and returns a new error built from msg.
	Error(msg string, args ...any) error
	// Err logs and returns err wrapped with msg.
	Err(msg string, err error, args ...any) error
	// ErrMsg logs msg and returns it as an error.
	ErrMsg(msg string) error
	// ErrorWithType logs and returns an error wrapping the given sentinel.
	ErrorWithType(errType error, msg string, args ...any) error
	// Er logs an error without returning it.
	Er(msg string, err error, args ...any)

	With(args ...any) Logger
	File(name string) Logger
	Function(name string) Logger
	WithTraceID(traceID string) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// New creates a logger tagged with the given package name. Output is JSON on
// stderr unless LOG_FORMAT=text; discarded entirely under `go test`.
func New(name string) Logger {
	var handler slog.Handler

	switch {
	case isTestMode():
		handler = slog.NewTextHandler(io.Discard, nil)
	case os.Getenv("LOG_FORMAT") == "text":
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &slogLogger{logger: slog.New(handler).With("package", name)}
}

// NewWithContext creates a logger that carries the trace ID from ctx, if any.
func NewWithContext(ctx context.Context, name string) Logger {
	log := New(name)
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		log = log.WithTraceID(traceID)
	}
	return log
}

func isTestMode() bool {
	// The test binary injects its flags as -test.* arguments, with or
	// without values, so match on the prefix.
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// ContextWithTraceID stores a trace ID in the context.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// TraceIDFromContext extracts the trace ID from the context, if present.
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }

func (l *slogLogger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l *slogLogger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *slogLogger) ErrMsg(msg string) error {
	l.logger.Error(msg)
	return fmt.Errorf("%s", msg)
}

func (l *slogLogger) ErrorWithType(errType error, msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%w: %s", errType, msg)
}

func (l *slogLogger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append(args, "error", err)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) File(name string) Logger {
	return l.With("file", name)
}

func (l *slogLogger) Function(name string) Logger {
	return l.With("function", name)
}

func (l *slogLogger) WithTraceID(traceID string) Logger {
	return l.With("traceID", traceID)
}
