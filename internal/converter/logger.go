package converter

import (
	"io"
	"log"
	"strings"
)

// Logger is the logging interface used by the converter pipeline.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Log levels, lowest first.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config value to a level. Unknown values map to info.
func ParseLevel(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// levelLogger writes leveled messages through a standard library logger.
type levelLogger struct {
	out   *log.Logger
	level int
}

// NewLogger returns a Logger writing to w, dropping messages below level.
func NewLogger(w io.Writer, level int) Logger {
	return &levelLogger{
		out:   log.New(w, "", log.LstdFlags),
		level: level,
	}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return NewLogger(io.Discard, LevelError+1)
}

func (l *levelLogger) Debug(msg string, args ...interface{}) {
	l.logf(LevelDebug, "[DEBUG] ", msg, args...)
}

func (l *levelLogger) Info(msg string, args ...interface{}) {
	l.logf(LevelInfo, "[INFO] ", msg, args...)
}

func (l *levelLogger) Warn(msg string, args ...interface{}) {
	l.logf(LevelWarn, "[WARN] ", msg, args...)
}

func (l *levelLogger) Error(msg string, args ...interface{}) {
	l.logf(LevelError, "[ERROR] ", msg, args...)
}

func (l *levelLogger) logf(level int, prefix, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf(prefix+msg, args...)
}
