// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger on stderr. When stderr
// is a terminal it uses slog.TextHandler for human-readable output;
// when piped or redirected it uses slog.JSONHandler so the output can
// be ingested alongside the dashboard's file log.
func NewCommandLogger(level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level))
}

func newHandler(w io.Writer, terminal bool, level slog.Leveler) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.NewTextHandler(w, options)
	}
	return slog.NewJSONHandler(w, options)
}
