// Package logx builds structured loggers on top of a line logger.
package logx

import (
	"io"
	"log/slog"
	"strings"

	"cubeviz/hal"
)

type lineWriter struct {
	l hal.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	w.l.WriteLineBytes(p)
	return len(p), nil
}

// New returns a text logger writing one line per record to l.
func New(l hal.Logger, level slog.Level) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(lineWriter{l: l}, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level. The empty
// string means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(s))
	return lvl, err
}
