package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshua-zingale/weather-mcp/weather-mcp/config"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/nws"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/observability"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/server"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/tools"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, version)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, &nws.ClientOptions{
		Metrics: metrics,
		Logger:  logger,
	})
	weather := tools.NewWeather(client, logger)

	mcpServer := server.NewWeatherServer(server.Info{
		Name:         cfg.ServerName,
		Version:      version,
		Dependencies: []string{"net/http"},
	}, weather, &server.Options{Logger: logger, Metrics: metrics})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "transport", cfg.Transport, "nws_base_url", cfg.NWSBaseURL)

	switch cfg.Transport {
	case config.TransportHTTP:
		listener, lerr := net.Listen("tcp", cfg.HTTPAddr)
		if lerr != nil {
			logger.Error("listen failed", "addr", cfg.HTTPAddr, "error", lerr)
			os.Exit(1)
		}
		err = server.RunHTTP(ctx, listener, server.NewWeatherMux(mcpServer, logger), cfg.ShutdownTimeout, logger)
	default:
		err = server.RunStdio(ctx, mcpServer)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
