package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Provider kinds selectable via the PROVIDER environment variable.
const (
	ProviderLocal  = "local"
	ProviderRemote = "remote"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	// Provider selects the narrative backend: "local" (template engine)
	// or "remote" (hosted narrative API).
	Provider        string
	NarrativeAPIURL string
	NarrativeAPIKey string

	RedisURL string
	DataDir  string

	// ContentRating gates the dialogue content filter (G/PG/PG-13 filter,
	// anything else passes through).
	ContentRating string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Provider:        strings.ToLower(getEnv("PROVIDER", ProviderLocal)),
		NarrativeAPIURL: getEnv("NARRATIVE_API_URL", ""),
		NarrativeAPIKey: getEnv("NARRATIVE_API_KEY", ""),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		ContentRating:   getEnv("CONTENT_RATING", "PG-13"),
	}

	switch cfg.Provider {
	case ProviderLocal:
	case ProviderRemote:
		if cfg.NarrativeAPIURL == "" {
			return nil, fmt.Errorf("NARRATIVE_API_URL is required when PROVIDER=remote")
		}
	default:
		return nil, fmt.Errorf("invalid PROVIDER %q (supported: local, remote)", cfg.Provider)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
