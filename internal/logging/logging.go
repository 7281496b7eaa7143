// Package logging constructs the structured slog loggers shared by the
// reel commands. It keeps level/format plumbing in one place so capture
// and assembly emit lines with the same shape.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string // debug, info, warn, error (default info)
	Format string // text or json (default text)
}

// New constructs a slog logger writing to stderr, leaving stdout free for
// command output such as tables and saved-path reports.
func New(opts Options) *slog.Logger {
	return newWithWriter(os.Stderr, opts)
}

func newWithWriter(w io.Writer, opts Options) *slog.Logger {
	lvl := ParseLevel(opts.Level)

	hopts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		handler = slog.NewJSONHandler(w, hopts)
	default:
		handler = slog.NewTextHandler(w, hopts)
	}
	return slog.New(handler)
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewNop returns a logger that discards everything. Wiring code and tests
// use it where a nil logger would otherwise need guarding.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
