package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Logger builds the logger for the interactive map. The TUI owns the
// terminal, so output goes to LogPath when set and is discarded otherwise.
// The returned closer releases the log file.
func (c Config) Logger() (*log.Logger, io.Closer, error) {
	if c.LogPath == "" {
		return c.NewLogger(io.Discard), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return c.NewLogger(f), f, nil
}

// NewLogger returns a logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "growthmap",
		Level:           level,
		ReportTimestamp: c.LogPath != "",
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
