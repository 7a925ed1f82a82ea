// Package logging builds the hclog loggers shared by the CLI, the TUI and
// the notifier plugin host.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

const appName = "studyhub"

// New returns a logger writing human-readable lines to w.
func New(w io.Writer, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   appName,
		Level:  hclog.LevelFromString(level),
		Output: w,
	})
}

// NewFile returns a logger appending to path. The TUI uses it so log lines
// never land on the alternate screen. The returned closer releases the file.
func NewFile(path, level string) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, level), file, nil
}

// Discard is used by tests and by code paths that have no logger configured.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard guards optional logger dependencies.
func OrDiscard(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
