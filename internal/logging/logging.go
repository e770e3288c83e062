// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the structured log file commands write to.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Unknown values fall back to info.
	Level string

	// Path is the log file, created (with parent directories) and appended
	// to. Empty means log to Output only.
	Path string

	// Output receives log lines when Path is empty (default: os.Stderr).
	Output io.Writer
}

// Setup builds a zerolog logger per cfg. When a file path is configured the
// returned close function releases it; it is a no-op otherwise.
func Setup(cfg Config) (zerolog.Logger, func() error, error) {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	closeFn := func() error { return nil }

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return logger, closeFn, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
