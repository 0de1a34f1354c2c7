package logging

import "sync"

// Level represents log severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields holds structured logging context.
type Fields map[string]any

// Logger is the interface the library logs through. Applications can plug in
// their own implementation; the analysis code never logs to stdout directly.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger that attaches the given fields to every entry.
	WithFields(fields Fields) Logger

	// SetLevel sets the minimum level that is emitted.
	SetLevel(level Level)
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewDefaultLogger()
)

// SetGlobalLogger replaces the process-wide logger. Passing nil silences
// all library logging.
func SetGlobalLogger(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if logger == nil {
		globalLogger = NoOpLogger{}
		return
	}
	globalLogger = logger
}

// GetGlobalLogger returns the current process-wide logger.
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Package-level helpers that route through the global logger.

func Debug(msg string, fields ...Fields) { GetGlobalLogger().Debug(msg, fields...) }

func Info(msg string, fields ...Fields) { GetGlobalLogger().Info(msg, fields...) }

func Warn(msg string, fields ...Fields) { GetGlobalLogger().Warn(msg, fields...) }

func Error(err error, msg string, fields ...Fields) { GetGlobalLogger().Error(err, msg, fields...) }

func WithFields(fields Fields) Logger { return GetGlobalLogger().WithFields(fields) }

func SetLevel(level Level) { GetGlobalLogger().SetLevel(level) }
