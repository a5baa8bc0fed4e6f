package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshua-zingale/weather-mcp/internal/testutil"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/nws"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/tools"
)

var testInfo = Info{Name: "Weather Server", Version: "test", Dependencies: []string{"net/http"}}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func nwsRoutes() map[string]testutil.Response {
	return map[string]testutil.Response{
		"/alerts?area=CA":                 {Body: testutil.AlertsCA},
		"/points/37.7749,-122.4194":       {Body: testutil.PointsSF},
		"/gridpoints/MTR/85,105/forecast": {Body: testutil.ForecastSF},
	}
}

func newTestServer(t *testing.T) *mcp.Server {
	t.Helper()
	stub := testutil.NewNWS(t, nwsRoutes())
	client := nws.NewClient(stub.URL, "weather-app/1.0", &nws.ClientOptions{Logger: discardLogger()})
	return NewWeatherServer(testInfo, tools.NewWeather(client, discardLogger()), &Options{Logger: discardLogger()})
}

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func readText(t *testing.T, session *mcp.ClientSession, uri string) string {
	t.Helper()
	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	return res.Contents[0].Text
}

func TestServerInfo(t *testing.T) {
	session := connect(t, newTestServer(t))

	info := session.InitializeResult().ServerInfo
	assert.Equal(t, "Weather Server", info.Name)
	assert.Equal(t, "test", info.Version)
}

func TestListTools(t *testing.T) {
	session := connect(t, newTestServer(t))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{AlertsTool, ForecastTool}, names)
}

func TestListResourceTemplates(t *testing.T) {
	session := connect(t, newTestServer(t))

	res, err := session.ListResourceTemplates(context.Background(), nil)
	require.NoError(t, err)

	var templates []string
	for _, tmpl := range res.ResourceTemplates {
		templates = append(templates, tmpl.URITemplate)
	}
	assert.ElementsMatch(t, []string{AlertsTemplate, ForecastTemplate}, templates)
}

func TestGetAlertsTool(t *testing.T) {
	session := connect(t, newTestServer(t))

	got := callText(t, session, AlertsTool, map[string]any{"state": "ca"})

	assert.Contains(t, got, "Active alerts for CA:\n\n")
	assert.Contains(t, got, "Event: Heat Advisory")
}

func TestGetForecastTool(t *testing.T) {
	session := connect(t, newTestServer(t))

	got := callText(t, session, ForecastTool, map[string]any{"latitude": 37.7749, "longitude": -122.4194})

	assert.Contains(t, got, "Forecast for 37.7749, -122.4194:\n\n")
	assert.Contains(t, got, "Tonight:\nTemperature: 40°F\nWind: 5 mph N\nClear\n---")
}

func TestAlertsResourceMatchesTool(t *testing.T) {
	session := connect(t, newTestServer(t))

	tool := callText(t, session, AlertsTool, map[string]any{"state": "ca"})
	resource := readText(t, session, "weather://alerts/ca")

	assert.Equal(t, tool, resource)
}

func TestForecastResourceMatchesTool(t *testing.T) {
	session := connect(t, newTestServer(t))

	tool := callText(t, session, ForecastTool, map[string]any{"latitude": 37.7749, "longitude": -122.4194})
	resource := readText(t, session, "weather://forecast/37.7749/-122.4194")

	assert.Equal(t, tool, resource)
}

func TestResourceReportsUpstreamFailureAsText(t *testing.T) {
	session := connect(t, newTestServer(t))

	got := readText(t, session, "weather://alerts/zz")

	assert.Equal(t, tools.MsgAlertsFailed, got)
}

func TestForecastResourceRejectsInvalidCoordinates(t *testing.T) {
	session := connect(t, newTestServer(t))

	_, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "weather://forecast/north/west"})
	require.Error(t, err)
}
