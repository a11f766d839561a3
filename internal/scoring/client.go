// Package scoring is a thin typed client for the fraud scoring service.
// Every call is a single round trip: no retries, no caching.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
)

// DefaultAlertLimit is used when FetchAlerts is called with a non-positive limit.
const DefaultAlertLimit = 10

// DefaultBaseURL is where the scoring service listens in a local deployment.
const DefaultBaseURL = "http://localhost:8000"

// Client is the set of operations the console issues against the scoring service.
type Client interface {
	SubmitTransaction(ctx context.Context, draft model.Draft) (model.Verdict, error)
	FetchMetrics(ctx context.Context) (model.MetricsSnapshot, error)
	FetchAlerts(ctx context.Context, limit int) ([]model.AlertRecord, error)
	Health(ctx context.Context) (string, error)
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Ensure we implement the interface.
var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

// WithTimeout bounds every call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		clone := *h.httpClient
		clone.Timeout = d
		h.httpClient = &clone
	}
}

// NewHTTPClient creates a client rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid scoring service URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid scoring service URL %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// SubmitTransaction scores a single draft via POST /predict.
func (c *HTTPClient) SubmitTransaction(ctx context.Context, draft model.Draft) (model.Verdict, error) {
	const op = "submit transaction"

	var resp predictResponse
	if err := c.do(ctx, op, http.MethodPost, "/predict", nil, newPredictRequest(draft), &resp); err != nil {
		return model.Verdict{}, err
	}

	verdict, err := resp.toVerdict(draft.TransactionID)
	if err != nil {
		return model.Verdict{}, &ServiceError{Op: op, Status: http.StatusOK, Err: err}
	}
	return verdict, nil
}

// FetchMetrics retrieves the model's evaluation metrics via GET /metrics.
func (c *HTTPClient) FetchMetrics(ctx context.Context) (model.MetricsSnapshot, error) {
	var resp metricsResponse
	if err := c.do(ctx, "fetch metrics", http.MethodGet, "/metrics", nil, nil, &resp); err != nil {
		return model.MetricsSnapshot{}, err
	}
	return resp.toSnapshot(), nil
}

// FetchAlerts retrieves up to limit recent alerts, most recent first. The
// service decides truncation; the client returns exactly what it receives.
func (c *HTTPClient) FetchAlerts(ctx context.Context, limit int) ([]model.AlertRecord, error) {
	if limit <= 0 {
		limit = DefaultAlertLimit
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var resp []alertResponse
	if err := c.do(ctx, "fetch alerts", http.MethodGet, "/alerts", query, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]model.AlertRecord, 0, len(resp))
	for _, a := range resp {
		records = append(records, a.toRecord())
	}
	return records, nil
}

// Health calls the service root and returns its status message.
func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp healthResponse
	if err := c.do(ctx, "health check", http.MethodGet, "/", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// do performs one round trip and decodes a 2xx body into out.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		common.LogDebug("Scoring service call failed", common.Fields{
			"method":   method,
			"path":     path,
			"duration": time.Since(start),
			"error":    err,
		})
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	slog.Debug("Scoring service call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Op: op, Status: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ServiceError{
			Op:     op,
			Status: resp.StatusCode,
			Body:   string(raw),
			Err:    fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}
