package interfaces

import "context"

// Logger is the leveled logging contract used throughout the console
// runtime. The method set matches github.com/goliatone/go-logger, so hosts
// already using that package can plug it in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. An implementation may scope
// children per name or return one shared instance for every request.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional Logger extension for attaching persistent
// structured fields. Implementations return a child logger that emits the
// supplied fields with every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
