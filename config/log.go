package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const logFilename = "marquee.log"

// ParseLevel maps a level name to a slog level. "off" reports ok=false.
func ParseLevel(s string) (level slog.Level, ok bool, err error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true, nil
	case "info", "":
		return slog.LevelInfo, true, nil
	case "warn":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	case "off", "none":
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("invalid log level: %s", s)
	}
}

// ResolveLogLevel picks the level: flag, then config, then info.
func (c Config) ResolveLogLevel(flagLevel string) string {
	if flagLevel != "" {
		return flagLevel
	}
	if c.Log.Level != "" {
		return c.Log.Level
	}
	return "info"
}

// LogPath returns the configured log file, or <profileDir>/marquee.log.
func (c Config) LogPath(profileDir string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(profileDir, logFilename)
}

// OpenLogger opens path for appending and returns a text logger at level.
// The terminal belongs to the UI, so logs never go to stdout or stderr.
// Level "off" returns a discarding logger and opens nothing. The caller must
// Close the returned closer.
func OpenLogger(path, level string) (*slog.Logger, io.Closer, error) {
	lvl, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if !enabled {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), f, nil
}
