// Package logger builds the process-wide slog logger. Components receive a
// *slog.Logger through their constructors; nothing reads the default logger
// except third-party code.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger writing to stdout in the requested format.
func New(level, format string) *slog.Logger {
	return newWithWriter(os.Stdout, level, format)
}

// Discard returns a logger that drops everything. For tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
