package logger

import (
	"log/slog"
	"os"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/config"
)

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		// Text format for development
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// WithEntity adds the conversational entity ID to logger context
func WithEntity(logger *slog.Logger, entityID string) *slog.Logger {
	return logger.With("entity_id", entityID)
}
