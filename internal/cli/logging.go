package cli

import (
	"io"
	"log/slog"
)

// setupLogging installs the default slog logger. Diagnostics stay quiet
// unless --verbose is set.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
