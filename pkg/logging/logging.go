/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable holding the default log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
// Unknown or empty names map to info.
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

// LevelFromEnv returns the level named by LOG_LEVEL, or info.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

// NewStructuredLogger returns a JSON logger tagging every record with module and version.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With("module", module, "version", version)
}

// NewCLILogger returns a human-readable text logger.
func NewCLILogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog default.
// The level is read from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, LevelFromEnv()))
}

// SetDefaultCLILogger installs a text logger on stderr as the slog default.
func SetDefaultCLILogger(level slog.Level) {
	slog.SetDefault(NewCLILogger(os.Stderr, level))
}
