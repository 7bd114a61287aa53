package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	current = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Setup points the shared logger at a JSON file sink. The terminal belongs to
// the UI, so nothing is ever written to stdout or stderr once the program runs.
// The returned closer flushes and closes the file.
func Setup(path, level string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(path) == "" {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		set(logger)
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	set(logger)
	return logger, f, nil
}

// ParseLevel maps config strings to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// L returns the shared logger. Before Setup it discards everything.
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}

func set(logger *slog.Logger) {
	mu.Lock()
	current = logger
	mu.Unlock()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
