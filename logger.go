package fusioncache

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Level selects the severity a log entry is emitted at. It exists so the
// accessor's synthetic-timeout and failure entries can be routed to
// independently configured severities.
type Level int8

// The zero Level is "unset" so Options can fall back to defaults.
const (
	LevelDebug Level = iota + 1
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger is a tiny leveled logger. Provide an adapter around your logging
// stack (see the log/ subpackages). Calls are best-effort: implementations
// MUST NOT panic back into the accessor.
// If Logger is nil in Options, logging is disabled.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// logAt dispatches msg to the method matching lvl. Unknown levels degrade
// to Error so misconfiguration never silently drops failure entries.
func logAt(l Logger, lvl Level, msg string, f Fields) {
	switch lvl {
	case LevelDebug:
		l.Debug(msg, f)
	case LevelInfo:
		l.Info(msg, f)
	case LevelWarn:
		l.Warn(msg, f)
	default:
		l.Error(msg, f)
	}
}
