// internal/cmdutil/log.go
package cmdutil

import (
	"io"
	"log/slog"
)

// Level maps the CLI verbosity switches to a slog level. quiet wins.
func Level(quiet, verbose bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger returns a text logger on dst (normally stderr).
func NewLogger(dst io.Writer, quiet, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(dst, &slog.HandlerOptions{Level: Level(quiet, verbose)}))
}
