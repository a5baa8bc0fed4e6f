package server

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"

	"github.com/joshua-zingale/weather-mcp/weather-mcp/api"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/observability"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/tools"
)

const (
	AlertsTool   = "get_alerts"
	ForecastTool = "get_forecast"

	AlertsTemplate   = "weather://alerts/{state}"
	ForecastTemplate = "weather://forecast/{latitude}/{longitude}"
)

var (
	alertsTemplate   = uritemplate.MustNew(AlertsTemplate)
	forecastTemplate = uritemplate.MustNew(ForecastTemplate)
)

// Info identifies the server to MCP clients. It is built once at startup.
type Info struct {
	Name         string
	Version      string
	Dependencies []string
}

type Options struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

type weatherHandlers struct {
	weather *tools.Weather
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWeatherServer registers the alert and forecast tools, and their resource
// aliases, on a new MCP server.
func NewWeatherServer(info Info, weather *tools.Weather, opts *Options) *mcp.Server {
	if weather == nil {
		panic("The weather tools cannot be a null pointer")
	}
	if opts == nil {
		opts = &Options{}
	}
	h := weatherHandlers{weather: weather, logger: opts.Logger, metrics: opts.Metrics}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.metrics == nil {
		h.metrics = observability.NewMetricsForTesting()
	}

	server := mcp.NewServer(&mcp.Implementation{Name: info.Name, Version: info.Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        AlertsTool,
		Description: "Get weather alerts for a state (two-letter state code, e.g. CA, NY)",
	}, h.getAlerts)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ForecastTool,
		Description: "Get weather forecast for a location",
	}, h.getForecast)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "alerts_resource",
		Description: "Get weather alerts for a state as a resource",
		URITemplate: AlertsTemplate,
		MIMEType:    "text/plain",
	}, h.readAlerts)
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "forecast_resource",
		Description: "Get weather forecast for a location as a resource",
		URITemplate: ForecastTemplate,
		MIMEType:    "text/plain",
	}, h.readForecast)

	h.logger.Info("registered weather server",
		"name", info.Name,
		"version", info.Version,
		"dependencies", info.Dependencies,
		"tools", []string{AlertsTool, ForecastTool},
		"resources", []string{AlertsTemplate, ForecastTemplate},
	)
	return server
}

func (h weatherHandlers) getAlerts(ctx context.Context, _ *mcp.CallToolRequest, input api.AlertsInput) (*mcp.CallToolResult, any, error) {
	h.metrics.ToolCalls.WithLabelValues(AlertsTool).Inc()
	return textResult(h.weather.Alerts(ctx, input.State)), nil, nil
}

func (h weatherHandlers) getForecast(ctx context.Context, _ *mcp.CallToolRequest, input api.ForecastInput) (*mcp.CallToolResult, any, error) {
	h.metrics.ToolCalls.WithLabelValues(ForecastTool).Inc()
	return textResult(h.weather.Forecast(ctx, input.Latitude, input.Longitude)), nil, nil
}

func (h weatherHandlers) readAlerts(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	values := alertsTemplate.Match(uri)
	if values == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	h.metrics.ToolCalls.WithLabelValues(AlertsTool).Inc()
	return textResource(uri, h.weather.Alerts(ctx, values.Get("state").String())), nil
}

func (h weatherHandlers) readForecast(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	values := forecastTemplate.Match(uri)
	if values == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	latitude, err := strconv.ParseFloat(values.Get("latitude").String(), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in %s: %w", uri, err)
	}
	longitude, err := strconv.ParseFloat(values.Get("longitude").String(), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in %s: %w", uri, err)
	}

	h.metrics.ToolCalls.WithLabelValues(ForecastTool).Inc()
	return textResource(uri, h.weather.Forecast(ctx, latitude, longitude)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func textResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: "text/plain", Text: text}},
	}
}
