package interfaces

import "context"

// Logger defines the leveled logging contract expected by the catalog
// runtime. It mirrors the interface exposed by github.com/goliatone/go-logger
// so host applications can plug that package in without additional adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name ("catalog.pages",
// "catalog.http", ...). A provider may return one shared instance or scoped
// children per name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for pinning structured fields to a
// logger. Implementations return a new logger that emits the supplied
// fields with every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
