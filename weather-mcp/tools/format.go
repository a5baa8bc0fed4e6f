package tools

import (
	"strconv"
	"strings"

	"github.com/joshua-zingale/weather-mcp/weather-mcp/api"
)

const separator = "---"

// FormatAlert renders one alert as a fixed five-line block followed by a separator.
func FormatAlert(feature api.AlertFeature) string {
	p := feature.Properties
	return strings.Join([]string{
		"Event: " + p.EventOrDefault(),
		"Area: " + p.AreaDescOrDefault(),
		"Severity: " + p.SeverityOrDefault(),
		"Status: " + p.StatusOrDefault(),
		"Headline: " + p.HeadlineOrDefault(),
		separator,
	}, "\n")
}

// FormatPeriod renders one forecast period followed by a separator.
func FormatPeriod(p api.ForecastPeriod) string {
	return strings.Join([]string{
		p.NameOrDefault() + ":",
		"Temperature: " + p.TemperatureOrDefault() + "°" + p.TemperatureUnitOrDefault(),
		"Wind: " + p.WindSpeedOrDefault() + " " + p.WindDirectionOrDefault(),
		p.ShortForecastOrDefault(),
		separator,
	}, "\n")
}

// formatCoordinate renders a coordinate the way it was given, without rounding.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
