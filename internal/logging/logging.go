// Package logging builds the charmbracelet/log logger used across framedrive.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framedrive/internal/config"
)

// New creates a logger for cfg. When toFile is set and cfg.File is not empty
// the log goes to that file, since a full-screen host owns the terminal;
// otherwise it goes to stderr. The returned closer releases the file.
func New(cfg config.LogConfig, toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if toFile && cfg.File != "" {
		path := config.ExpandHome(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "framedrive",
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
