package observability

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/joshua-zingale/weather-mcp/weather-mcp/config"
)

// NewLogger builds the process logger. Output goes to stderr because stdout
// carries the stdio MCP stream.
func NewLogger(cfg *config.Config, version string) *slog.Logger {
	return newLogger(os.Stderr, cfg, version)
}

func newLogger(w io.Writer, cfg *config.Config, version string) *slog.Logger {
	if cfg.AppEnv == "dev" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", cfg.ServerName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	return slog.New(h).With(
		"app", cfg.ServerName,
		"version", version,
		"env", cfg.AppEnv,
	)
}
