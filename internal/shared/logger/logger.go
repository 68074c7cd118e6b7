package logger

import (
	"io"
	"log/slog"
	"os"

	"starwars-catalog/internal/shared/config"
)

// Init installs the default slog logger for the given logging configuration
func Init(cfg config.LoggingConfig, environment string) *slog.Logger {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)

	logger.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Level,
		"json_format", cfg.JSONFormat,
		"environment", environment,
	)

	return logger
}

func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
