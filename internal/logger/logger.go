// ABOUTME: Structured logging setup for the service
// ABOUTME: Builds an slog logger from config and installs it as the default
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Config controls the logger's level and output format
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "text"
}

// DefaultConfig returns text logging at info level
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}

// New creates a logger and sets it as the process default
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
