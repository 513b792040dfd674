package logging

import (
	"io"
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// A Logger writes leveled messages, discarding anything below its threshold
type Logger struct {
	level int
	out   *log.Logger
}

// CreateLogger produces a Logger writing to stderr which discards messages
// below the given level
func CreateLogger(level int) *Logger {
	return CreateLoggerWithOutput(level, os.Stderr)
}

// CreateLoggerWithOutput produces a Logger writing to w which discards
// messages below the given level
func CreateLoggerWithOutput(level int, w io.Writer) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// Logf writes a message at the given level
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("["+LogLevelToString(level)+"] "+format, args...)
}
