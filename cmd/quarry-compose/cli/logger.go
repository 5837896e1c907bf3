// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/quarry-build/quarry/lib/config"
)

// NewLogger creates a structured logger for command operations
// according to the logging configuration. Format "auto" picks
// slog.TextHandler when stderr is a terminal and slog.JSONHandler when
// it is piped or redirected (build orchestrators, CI), so logs stay
// machine-parseable where machines read them.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewLogger(cfg.Logging).With("command", "python-binary")
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	useText := false
	switch cfg.Format {
	case "text":
		useText = true
	case "json":
		useText = false
	default:
		useText = term.IsTerminal(int(os.Stderr.Fd()))
	}

	var handler slog.Handler
	if useText {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
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
