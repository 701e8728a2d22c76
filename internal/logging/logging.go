// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewHandler returns a text handler when w is an interactive terminal and a
// JSON handler otherwise. Verbose enables debug records with source locations.
func NewHandler(w io.Writer, isTerminal bool, verbose bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	if isTerminal {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Setup installs a default logger writing to stderr.
func Setup(verbose bool) {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	slog.SetDefault(slog.New(NewHandler(os.Stderr, isTerminal, verbose)))
}
