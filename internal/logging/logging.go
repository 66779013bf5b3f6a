// Package logging builds the file-backed diagnostic logger. The terminal
// belongs to the front ends, so diagnostics never go to stdout or stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns a logger appending to the file at path and a close func that
// is always safe to call. An empty path, or any failure opening the file,
// yields a logger that discards everything.
func New(path, level string) (*log.Logger, func()) {
	w, closer := openLogFile(path)
	logger := log.NewWithOptions(w, log.Options{
		Level:           parseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "tdm",
	})
	return logger, closer
}

func openLogFile(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
