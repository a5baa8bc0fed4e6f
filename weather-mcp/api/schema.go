package api

import "encoding/json"

// Placeholders substituted for absent upstream fields.
const (
	Unknown         = "Unknown"
	NoHeadline      = "No headline"
	NoForecast      = "No forecast available"
	DefaultTempUnit = "F"
)

// AlertsResponse is the body of GET /alerts?area={state}.
type AlertsResponse struct {
	Features []AlertFeature `json:"features"`
}

type AlertFeature struct {
	Properties AlertProperties `json:"properties"`
}

type AlertProperties struct {
	Event    *string `json:"event,omitempty"`
	AreaDesc *string `json:"areaDesc,omitempty"`
	Severity *string `json:"severity,omitempty"`
	Status   *string `json:"status,omitempty"`
	Headline *string `json:"headline,omitempty"`
}

func (p AlertProperties) EventOrDefault() string    { return orDefault(p.Event, Unknown) }
func (p AlertProperties) AreaDescOrDefault() string { return orDefault(p.AreaDesc, Unknown) }
func (p AlertProperties) SeverityOrDefault() string { return orDefault(p.Severity, Unknown) }
func (p AlertProperties) StatusOrDefault() string   { return orDefault(p.Status, Unknown) }
func (p AlertProperties) HeadlineOrDefault() string { return orDefault(p.Headline, NoHeadline) }

// PointResponse is the body of GET /points/{lat},{lon}.
type PointResponse struct {
	Properties PointProperties `json:"properties"`
}

type PointProperties struct {
	Forecast *string `json:"forecast,omitempty"`
}

// ForecastURL returns the grid point's forecast URL and whether one was present.
func (p PointResponse) ForecastURL() (string, bool) {
	if p.Properties.Forecast == nil || *p.Properties.Forecast == "" {
		return "", false
	}
	return *p.Properties.Forecast, true
}

// ForecastResponse is the body of the URL found in PointProperties.Forecast.
type ForecastResponse struct {
	Properties ForecastProperties `json:"properties"`
}

type ForecastProperties struct {
	Periods []ForecastPeriod `json:"periods"`
}

type ForecastPeriod struct {
	Name            *string      `json:"name,omitempty"`
	Temperature     *json.Number `json:"temperature,omitempty"`
	TemperatureUnit *string      `json:"temperatureUnit,omitempty"`
	WindSpeed       *string      `json:"windSpeed,omitempty"`
	WindDirection   *string      `json:"windDirection,omitempty"`
	ShortForecast   *string      `json:"shortForecast,omitempty"`
}

func (p ForecastPeriod) NameOrDefault() string { return orDefault(p.Name, Unknown) }

func (p ForecastPeriod) TemperatureOrDefault() string {
	if p.Temperature == nil {
		return Unknown
	}
	return p.Temperature.String()
}

func (p ForecastPeriod) TemperatureUnitOrDefault() string {
	return orDefault(p.TemperatureUnit, DefaultTempUnit)
}

func (p ForecastPeriod) WindSpeedOrDefault() string     { return orDefault(p.WindSpeed, Unknown) }
func (p ForecastPeriod) WindDirectionOrDefault() string { return orDefault(p.WindDirection, "") }
func (p ForecastPeriod) ShortForecastOrDefault() string { return orDefault(p.ShortForecast, NoForecast) }

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// Tool inputs.

type AlertsInput struct {
	State string `json:"state" jsonschema:"two-letter US state code, e.g. CA or NY"`
}

type ForecastInput struct {
	Latitude  float64 `json:"latitude" jsonschema:"latitude of the location (-90 to 90)"`
	Longitude float64 `json:"longitude" jsonschema:"longitude of the location (-180 to 180)"`
}
