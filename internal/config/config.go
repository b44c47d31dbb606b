package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all tool settings, populated from environment variables.
// Command-line flags override these per invocation; the environment only
// supplies defaults.
type Config struct {
	LogLevel  string
	LogFormat string

	CSVPath     string
	ReportPath  string
	MonthlyPath string
}

// Load reads configuration from the environment, after picking up an
// optional .env file, applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:  EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: EnvOrDefault("LOG_FORMAT", "text"),
		CSVPath:   EnvOrDefault("TIMELINE_CSV", "timeline.csv"),
		// Text outputs are opt-in: files are written only when a path
		// arrives from the environment or a flag.
		ReportPath:  os.Getenv("TIMELINE_REPORT"),
		MonthlyPath: os.Getenv("TIMELINE_MONTHLY"),
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", cfg.LogFormat)
	}

	return cfg, nil
}

// EnvOrDefault returns the environment value for key, or fallback when unset
// or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
