package nws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshua-zingale/weather-mcp/internal/testutil"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/api"
	"github.com/joshua-zingale/weather-mcp/weather-mcp/observability"
)

func testClient(baseURL string, metrics *observability.Metrics) *Client {
	return NewClient(baseURL, "weather-app/1.0", &ClientOptions{
		Metrics: metrics,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestGet_Success(t *testing.T) {
	stub := testutil.NewNWS(t, map[string]testutil.Response{
		"/alerts?area=CA": {Body: testutil.AlertsCA},
	})
	metrics := observability.NewMetricsForTesting()
	c := testClient(stub.URL, metrics)

	res := Get[api.AlertsResponse](context.Background(), c, "alerts", stub.URL+"/alerts?area=CA")
	require.True(t, res.OK())
	require.Len(t, res.Payload.Features, 2)
	assert.Equal(t, "Heat Advisory", res.Payload.Features[0].Properties.EventOrDefault())
	assert.Nil(t, res.Payload.Features[1].Properties.Headline)

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.UpstreamRequests.WithLabelValues("alerts", observability.OutcomeSuccess)))
}

func TestGet_SendsFixedHeaders(t *testing.T) {
	stub := testutil.NewNWS(t, map[string]testutil.Response{
		"/points/1.0000,2.0000": {Body: testutil.PointsSF},
	})
	c := testClient(stub.URL, nil)

	Get[api.PointResponse](context.Background(), c, "points", stub.URL+"/points/1.0000,2.0000")

	reqs := stub.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "weather-app/1.0", reqs[0].Header.Get("User-Agent"))
	assert.Equal(t, "application/geo+json", reqs[0].Header.Get("Accept"))
}

func TestGet_StatusError(t *testing.T) {
	stub := testutil.NewNWS(t, map[string]testutil.Response{
		"/points/0.0000,0.0000": {Status: http.StatusNotFound, Body: `{"title": "Data Unavailable For Requested Point"}`},
	})
	metrics := observability.NewMetricsForTesting()
	c := testClient(stub.URL, metrics)

	res := Get[api.PointResponse](context.Background(), c, "points", stub.URL+"/points/0.0000,0.0000")
	require.False(t, res.OK())
	assert.Contains(t, res.Err.Error(), "404")
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.UpstreamRequests.WithLabelValues("points", observability.OutcomeStatusError)))
}

func TestGet_DecodeError(t *testing.T) {
	stub := testutil.NewNWS(t, map[string]testutil.Response{
		"/alerts?area=TX": {Body: `not json`},
	})
	metrics := observability.NewMetricsForTesting()
	c := testClient(stub.URL, metrics)

	res := Get[api.AlertsResponse](context.Background(), c, "alerts", stub.URL+"/alerts?area=TX")
	require.False(t, res.OK())
	assert.Contains(t, res.Err.Error(), "decode response")
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.UpstreamRequests.WithLabelValues("alerts", observability.OutcomeDecodeError)))
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	metrics := observability.NewMetricsForTesting()
	c := testClient(url, metrics)

	res := Get[api.AlertsResponse](context.Background(), c, "alerts", url+"/alerts?area=CA")
	require.False(t, res.OK())
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.UpstreamRequests.WithLabelValues("alerts", observability.OutcomeTransportError)))
}

func TestGet_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := Get[api.AlertsResponse](ctx, testClient(srv.URL, nil), "alerts", srv.URL+"/alerts?area=CA")
	require.False(t, res.OK())
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}
