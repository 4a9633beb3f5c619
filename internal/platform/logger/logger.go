package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/tili-api/internal/config"
)

// ParseLevel converts a configured level name (case-insensitive) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New creates a JSON logger writing to out at the named level.
func New(out io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})), nil
}

// Setup initializes the application's logger from the server configuration,
// writing JSON to stdout, and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger, err := New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.SetDefault(logger)
	return logger, nil
}
