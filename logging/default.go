package logging

import (
	"fmt"
	"log"
	"maps"
	"os"
	"sort"
	"strings"
)

// ANSI escape sequences for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// DefaultLogger writes leveled, structured lines via the standard log package.
// Debug/Info go to stdout, Warn/Error to stderr.
type DefaultLogger struct {
	out       *log.Logger
	errOut    *log.Logger
	level     Level
	fields    Fields
	useColors bool
}

// NewDefaultLogger creates a logger with colors enabled when stdout is a TTY.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		out:       log.New(os.Stdout, "", log.LstdFlags),
		errOut:    log.New(os.Stderr, "", log.LstdFlags),
		level:     InfoLevel,
		fields:    make(Fields),
		useColors: isTerminal(),
	}
}

func isTerminal() bool {
	if info, _ := os.Stdout.Stat(); info != nil {
		return info.Mode()&os.ModeCharDevice != 0
	}
	return false
}

func (d *DefaultLogger) format(level Level, err error, msg string, fields ...Fields) string {
	merged := make(Fields)
	maps.Copy(merged, d.fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}

	if len(merged) > 0 {
		// Sorted keys keep output stable across runs.
		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, merged[k])
		}
	}

	line := b.String()
	if d.useColors {
		switch level {
		case WarnLevel:
			line = colorYellow + line + colorReset
		case ErrorLevel:
			line = colorRed + line + colorReset
		}
	}
	return line
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < d.level {
		return
	}
	line := d.format(level, err, msg, fields...)
	if level >= WarnLevel {
		d.errOut.Println(line)
	} else {
		d.out.Println(line)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) { d.log(DebugLevel, nil, msg, fields...) }

func (d *DefaultLogger) Info(msg string, fields ...Fields) { d.log(InfoLevel, nil, msg, fields...) }

func (d *DefaultLogger) Warn(msg string, fields ...Fields) { d.log(WarnLevel, nil, msg, fields...) }

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields)
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)
	return &DefaultLogger{
		out:       d.out,
		errOut:    d.errOut,
		level:     d.level,
		fields:    merged,
		useColors: d.useColors,
	}
}

func (d *DefaultLogger) SetLevel(level Level) { d.level = level }

// NoOpLogger discards everything. Useful in tests and when the library is
// embedded somewhere that handles its own diagnostics.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (NoOpLogger) Info(msg string, fields ...Fields)             {}
func (NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (NoOpLogger) WithFields(fields Fields) Logger               { return NoOpLogger{} }
func (NoOpLogger) SetLevel(level Level)                          {}
