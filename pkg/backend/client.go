// Package backend implements the client side of the news service HTTP contract
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/newsdesk/pkg/domain"
)

const (
	// DefaultFetchPath is the news fetch endpoint of the service
	DefaultFetchPath = "/api/fetch-news"
	// DefaultHealthPath is the health endpoint of the service
	DefaultHealthPath = "/api/health"

	maxErrorBody = 64 * 1024
)

// Request is the body of a news fetch call
type Request struct {
	Companies    []string `json:"companies"`
	ForceRefresh bool     `json:"force_refresh"`
}

// Response is the body of a successful news fetch call. Only Data is used by the client,
// raw form kept to tell a missing or non-array data field from an empty one.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
}

// Params for NewClient
type Params struct {
	URL        string        // base url of the news service, e.g. http://localhost:8000
	FetchPath  string        // defaults to DefaultFetchPath
	HealthPath string        // defaults to DefaultHealthPath
	Timeout    time.Duration // per-request timeout, zero means no timeout
	HTTPClient *http.Client  // optional, built from Timeout if nil
}

// Client calls the news service
type Client struct {
	httpClient *http.Client
	fetchURL   string
	healthURL  string
}

// NewClient makes a news service client
func NewClient(p Params) *Client {
	if p.FetchPath == "" {
		p.FetchPath = DefaultFetchPath
	}
	if p.HealthPath == "" {
		p.HealthPath = DefaultHealthPath
	}
	httpClient := p.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: p.Timeout}
	}
	base := strings.TrimSuffix(p.URL, "/")
	return &Client{
		httpClient: httpClient,
		fetchURL:   base + p.FetchPath,
		healthURL:  base + p.HealthPath,
	}
}

// FetchNews makes exactly one call to the fetch endpoint and returns items as received.
// Errors are one of *TransportError, *ServerError, ErrMalformedResponse or a decode error.
func (c *Client) FetchNews(ctx context.Context, req Request) ([]domain.NewsItem, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fetchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	log.Printf("[DEBUG] news service responded %d, request %s", resp.StatusCode, reqID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newServerError(resp)
	}

	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parseItems(r.Data)
}

// Health checks the health endpoint, any 2xx status is healthy
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("make health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{Status: resp.StatusCode}
	}
	return nil
}

// parseItems checks data is a json array and decodes it
func parseItems(data json.RawMessage) ([]domain.NewsItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedResponse
	}

	items := []domain.NewsItem{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		log.Printf("[WARN] can't decode news items: %v", err)
		return nil, ErrMalformedResponse
	}
	for i := range items {
		if items[i].Links == nil {
			items[i].Links = []string{}
		}
	}
	return items, nil
}

// newServerError reads error body and extracts the detail string if present
func newServerError(resp *http.Response) *ServerError {
	res := &ServerError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		log.Printf("[WARN] can't read error response body: %v", err)
		return res
	}

	var errBody struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &errBody); err != nil {
		return res
	}
	var detail string
	if err := json.Unmarshal(errBody.Detail, &detail); err == nil {
		res.Detail = detail
	}
	return res
}
