// Package observability builds the structured logger the rest of the tool
// shares.
package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/hollyoak/timeline-etl/internal/config"
)

// NewLogger creates a slog.Logger configured from LOG_LEVEL and LOG_FORMAT.
// Logs go to stderr so stdout stays clean for the rendered report.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
