// Package logger provides a simple wrapper around slog for structured logging.
//
// A full-screen TUI owns the terminal, so log output is discarded by
// default. Set MADT_LOG to a file path (or "stderr") to capture logs.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global logger instance.
var Logger = slog.New(slog.NewTextHandler(logWriter(), nil))

func logWriter() io.Writer {
	switch dest := os.Getenv("MADT_LOG"); dest {
	case "":
		return io.Discard
	case "stderr":
		return os.Stderr
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return os.Stderr
		}
		return f
	}
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
