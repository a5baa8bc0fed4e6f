package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/joshua-zingale/weather-mcp/weather-mcp/observability"
)

const acceptGeoJSON = "application/geo+json"

// Result is the outcome of one upstream fetch. Err is nil on success and
// otherwise records why the fetch failed.
type Result[T any] struct {
	Payload T
	Err     error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Client issues GET requests against the NWS API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

type ClientOptions struct {
	// HTTPClient defaults to a client with net/http's default settings.
	HTTPClient *http.Client
	Metrics    *observability.Metrics
	Logger     *slog.Logger
}

func NewClient(baseURL, userAgent string, opts *ClientOptions) *Client {
	if opts == nil {
		opts = &ClientOptions{}
	}
	c := &Client{
		httpClient: opts.HTTPClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.metrics == nil {
		c.metrics = observability.NewMetricsForTesting()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches url and decodes its JSON body into T. endpoint labels the
// request in logs and metrics.
//
// Transport errors, non-2xx statuses and undecodable bodies all yield a
// failed Result; the cause is logged here and never shown to tool callers.
func Get[T any](ctx context.Context, c *Client, endpoint, url string) Result[T] {
	var payload T
	start := time.Now()
	outcome, err := c.do(ctx, url, &payload)

	c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	c.metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()

	if err != nil {
		c.logger.Warn("nws request failed", "endpoint", endpoint, "url", url, "outcome", outcome, "error", err)
		return Result[T]{Err: err}
	}
	c.logger.Debug("nws request succeeded", "endpoint", endpoint, "url", url, "duration", time.Since(start))
	return Result[T]{Payload: payload}
}

func (c *Client) do(ctx context.Context, url string, into any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return observability.OutcomeTransportError, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return observability.OutcomeTransportError, fmt.Errorf("nws request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return observability.OutcomeStatusError, fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return observability.OutcomeDecodeError, fmt.Errorf("decode response: %w", err)
	}
	return observability.OutcomeSuccess, nil
}
