package logging

import (
	"log/slog"
	"os"
)

// New creates the process logger. Production output is JSON; debug mode
// switches to the text handler for local readability.
func New(level slog.Level, debug bool) *slog.Logger {
	if debug {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
