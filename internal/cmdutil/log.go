// internal/cmdutil/log.go
package cmdutil

import (
	"io"
	"log/slog"
)

// LogLevel maps -d repetitions and --quiet to a slog level:
// quiet → error, 0 → warn, 1 → info, 2+ → debug.
func LogLevel(debug int, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case debug >= 2:
		return slog.LevelDebug
	case debug == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a text logger on dst at the level chosen by LogLevel.
func NewLogger(dst io.Writer, debug int, quiet bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(dst, &slog.HandlerOptions{Level: LogLevel(debug, quiet)}))
}
