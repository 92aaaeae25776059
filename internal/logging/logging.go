// SPDX-License-Identifier: MPL-2.0

// Package logging wires log/slog to a charmbracelet/log handler on stderr.
// Call sites throughout supplyloader use slog; only this package knows how the
// records are rendered.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Prefix is shown before every log line.
const Prefix = "supplyloader"

// New returns a slog.Logger that writes to w at or above level. An unknown
// level falls back to warn.
func New(w io.Writer, level string) *slog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  lvl,
	})
	return slog.New(handler)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, level string) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)
	return logger
}
