// Package hotelsearch provides a typed HTTP client for the hotel
// deep-search API.
package hotelsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// defaultTimeout covers a full deep search: five layer calls plus a
// synthesis call, each possibly falling back to a second provider.
const defaultTimeout = 3 * time.Minute

// Client is the hotelsearch SDK entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a hotelsearch Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.apiKey,
		httpClient: hc,
	}
}

// SearchResponse is the deep-search result envelope.
type SearchResponse struct {
	Status         domain.Status                       `json:"status"`
	Query          string                              `json:"query"`
	Results        map[domain.Layer]domain.LayerResult `json:"results"`
	Synthesis      string                              `json:"synthesis"`
	Timestamp      time.Time                           `json:"timestamp"`
	ProcessingTime float64                             `json:"processing_time"`
}

// LayerResponse is the single-layer search result envelope.
type LayerResponse struct {
	Layer     domain.Layer       `json:"layer"`
	Query     string             `json:"query"`
	Result    domain.LayerResult `json:"result"`
	Timestamp time.Time          `json:"timestamp"`
}

// HealthReport is the health-check response.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// APIError is an error envelope returned by the server.
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hotelsearch: %s (%d): %s", e.Code, e.HTTPStatus, e.Message)
}

// DeepSearch runs a query against every data layer.
func (c *Client) DeepSearch(ctx context.Context, query string) (*SearchResponse, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("hotelsearch: marshal request: %w", err)
	}

	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, "/deep-search", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchLayer runs a query against a single data layer.
func (c *Client) SearchLayer(ctx context.Context, layer, query string) (*LayerResponse, error) {
	path := "/search-layer/" + url.PathEscape(layer) + "?query=" + url.QueryEscape(query)

	var resp LayerResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Suggestions returns related queries for a partial query.
func (c *Client) Suggestions(ctx context.Context, query string) ([]string, error) {
	path := "/search-suggestions?query=" + url.QueryEscape(query)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Analytics returns search analytics.
func (c *Client) Analytics(ctx context.Context) (map[string]json.RawMessage, error) {
	var resp map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/analytics", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Health returns the service health report. A degraded service responds
// with 503, surfaced as an *APIError.
func (c *Client) Health(ctx context.Context) (*HealthReport, error) {
	var resp HealthReport
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("hotelsearch: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hotelsearch: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Code = "unknown"
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("hotelsearch: decode response: %w", err)
		}
	}
	return nil
}
