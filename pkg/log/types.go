package log

import (
	"fmt"
	"strings"
)

// Logger is the structured logger used across the wallet core.
//
// keysAndValues are alternating key/value pairs ("coin", name, "error", code).
// Implementations must never be handed raw key material; use Fingerprint
// when a key needs to be correlated across log lines.
type Logger interface {
	// Debug logs per-operation details (coin, derivation, handle kinds).
	Debug(msg string, keysAndValues ...any)
	// Info logs lifecycle events such as registry loading.
	Info(msg string, keysAndValues ...any)
	// Warn logs expected failures returned to the caller as error codes.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures that indicate a misconfiguration or a bug.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure and may terminate the program.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that attaches key/value to every entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the persistent key/value pairs of this logger.
	GetAllKV() []any
	// WithName returns a logger named after a component. Names nest with dots.
	WithName(name string) Logger
	// Name returns the logger's name.
	Name() string
	// AddCallerSkip returns a logger that skips extra frames when reporting
	// the caller. Implementations without caller info return themselves.
	AddCallerSkip(skip int) Logger
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch lvl := Level(strings.ToLower(strings.TrimSpace(s))); lvl {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return lvl, nil
	case "":
		return LevelInfo, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// SpanEventRecorder records log entries on a tracing span.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string

	// RecordEvent adds an event with the given attributes to the span.
	RecordEvent(name string, keysAndValues ...any)
	// RecordError adds an event and marks the span as failed.
	RecordError(name string, keysAndValues ...any)
}
