package server

import (
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewWeatherMux serves the MCP streamable HTTP transport at /mcp alongside
// health and Prometheus endpoints.
func NewWeatherMux(server *mcp.Server, logger *slog.Logger) *http.ServeMux {

	if server == nil {
		panic("The MCP server cannot be a null pointer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux.Handle("/mcp", logRequests(handler, logger))
	mux.HandleFunc("GET /healthz", toJson(getHealth))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

type health struct {
	Status string `json:"status"`
}

func getHealth(_ *http.Request) (health, error) {
	return health{Status: "healthy"}, nil
}
