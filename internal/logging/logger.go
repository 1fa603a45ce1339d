// Package logging keeps diagnostics off the terminal, which belongs to the
// TUI, by writing them to a dated file under ~/.tweetsense/logs. Each binary
// opens its own file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// File is a logger backed by a per-day log file.
type File struct {
	*log.Logger
	f *os.File
}

// Open starts (or appends to) today's log file for the named app.
func Open(app string) (*File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".tweetsense", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.log", app, time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})
	logger.Info("started", "app", app)

	return &File{Logger: logger, f: f}, nil
}

// Close writes the shutdown line and releases the file.
func (l *File) Close() error {
	l.Info("shutting down")
	return l.f.Close()
}
