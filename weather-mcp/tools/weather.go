package tools

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/joshua-zingale/weather-mcp/weather-mcp/api"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/nws"
)

// Messages returned in place of a lookup result.
const (
	MsgAlertsFailed      = "Failed to retrieve alerts data"
	MsgNoForecastURL     = "Failed to get forecast URL from grid point data"
	MsgForecastFailed    = "Failed to retrieve forecast data"
	MsgNoForecastPeriods = "No forecast periods available"
)

// Weather answers alert and forecast lookups against the NWS API. Every
// outcome, including upstream failure, is reported as a string.
type Weather struct {
	client *nws.Client
	logger *slog.Logger
}

func NewWeather(client *nws.Client, logger *slog.Logger) *Weather {
	if client == nil {
		panic("The NWS client cannot be a null pointer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Weather{client: client, logger: logger}
}

// Alerts lists the active alerts for a two-letter state code.
func (w *Weather) Alerts(ctx context.Context, state string) string {
	code := strings.ToUpper(state)
	alertsURL := w.client.BaseURL() + "/alerts?" + url.Values{"area": {code}}.Encode()

	res := nws.Get[api.AlertsResponse](ctx, w.client, "alerts", alertsURL)
	if !res.OK() {
		return MsgAlertsFailed
	}

	features := res.Payload.Features
	if len(features) == 0 {
		return fmt.Sprintf("No active alerts for %s", code)
	}

	blocks := make([]string, 0, len(features))
	for _, feature := range features {
		blocks = append(blocks, FormatAlert(feature))
	}
	return fmt.Sprintf("Active alerts for %s:\n\n", code) + strings.Join(blocks, "\n")
}

// Forecast resolves the grid point for a coordinate and lists its forecast periods.
func (w *Weather) Forecast(ctx context.Context, latitude, longitude float64) string {
	lat, lon := formatCoordinate(latitude), formatCoordinate(longitude)

	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", w.client.BaseURL(), latitude, longitude)
	points := nws.Get[api.PointResponse](ctx, w.client, "points", pointsURL)
	if !points.OK() {
		return fmt.Sprintf("Failed to retrieve grid point data for coordinates: %s, %s. "+
			"This location may not be supported by the NWS API (only US locations are supported).", lat, lon)
	}

	forecastURL, ok := points.Payload.ForecastURL()
	if !ok {
		w.logger.Warn("grid point has no forecast url", "latitude", latitude, "longitude", longitude)
		return MsgNoForecastURL
	}

	forecast := nws.Get[api.ForecastResponse](ctx, w.client, "forecast", forecastURL)
	if !forecast.OK() {
		return MsgForecastFailed
	}

	periods := forecast.Payload.Properties.Periods
	if len(periods) == 0 {
		return MsgNoForecastPeriods
	}

	blocks := make([]string, 0, len(periods))
	for _, period := range periods {
		blocks = append(blocks, FormatPeriod(period))
	}
	return fmt.Sprintf("Forecast for %s, %s:\n\n", lat, lon) + strings.Join(blocks, "\n")
}
