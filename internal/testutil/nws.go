package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// BasePlaceholder is replaced with the stub's own URL in response bodies, so
// a points payload can link to a forecast served by the same stub.
const BasePlaceholder = "{{base}}"

type Response struct {
	Status int
	Body   string
}

// NWS is an httptest stand-in for api.weather.gov. Routes are keyed by
// request URI (path plus raw query); unknown routes answer 404.
type NWS struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Response
	requests []*http.Request
}

func NewNWS(t *testing.T, routes map[string]Response) *NWS {
	t.Helper()
	stub := &NWS{routes: routes}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(stub.Close)
	return stub
}

func (n *NWS) serve(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	n.requests = append(n.requests, r.Clone(r.Context()))
	res, ok := n.routes[r.URL.RequestURI()]
	n.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	w.Write([]byte(strings.ReplaceAll(res.Body, BasePlaceholder, n.URL)))
}

// Requests returns the requests received so far, oldest first.
func (n *NWS) Requests() []*http.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*http.Request(nil), n.requests...)
}

// RequestURIs returns the request URI of every request received so far.
func (n *NWS) RequestURIs() []string {
	var uris []string
	for _, r := range n.Requests() {
		uris = append(uris, r.URL.RequestURI())
	}
	return uris
}

// Sample payloads.

const AlertsCA = `{
  "type": "FeatureCollection",
  "features": [
    {"properties": {"event": "Heat Advisory", "areaDesc": "Inland Empire", "severity": "Moderate", "status": "Actual", "headline": "Heat Advisory issued"}},
    {"properties": {"event": "Wind Advisory"}}
  ]
}`

const AlertsEmpty = `{"type": "FeatureCollection", "features": []}`

const PointsSF = `{"properties": {"forecast": "{{base}}/gridpoints/MTR/85,105/forecast"}}`

const PointsNoForecast = `{"properties": {"gridId": "MTR"}}`

const ForecastSF = `{
  "properties": {
    "periods": [
      {"name": "Tonight", "temperature": 40, "temperatureUnit": "F", "windSpeed": "5 mph", "windDirection": "N", "shortForecast": "Clear"},
      {"name": "Monday", "temperature": 61, "temperatureUnit": "F", "windSpeed": "10 mph", "windDirection": "W", "shortForecast": "Sunny"}
    ]
  }
}`

const ForecastEmpty = `{"properties": {"periods": []}}`
