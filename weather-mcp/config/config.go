package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all server settings, populated from environment variables.
type Config struct {
	AppEnv          string
	LogLevel        slog.Level
	ServerName      string
	Transport       string
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// NWS upstream.
	NWSBaseURL   string
	NWSUserAgent string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	appEnv := envOrDefault("APP_ENV", "prod")
	switch appEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	transport := strings.ToLower(envOrDefault("MCP_TRANSPORT", TransportStdio))
	switch transport {
	case TransportStdio, TransportHTTP:
	default:
		return nil, fmt.Errorf("invalid MCP_TRANSPORT %q (allowed: stdio, http)", transport)
	}

	shutdownTimeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", os.Getenv("SHUTDOWN_TIMEOUT"))
	}

	baseURL := strings.TrimRight(envOrDefault("NWS_API_BASE", "https://api.weather.gov"), "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid NWS_API_BASE %q", baseURL)
	}

	return &Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		ServerName:      envOrDefault("MCP_SERVER_NAME", "Weather Server"),
		Transport:       transport,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,
		NWSBaseURL:      baseURL,
		NWSUserAgent:    envOrDefault("NWS_USER_AGENT", "weather-app/1.0"),
	}, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
