// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postman resolves collection names to UIDs and fetches collection
// content from the Postman API. Both operations fan out one request per
// input and consume responses in completion order, failing the whole batch
// on the first error.
package postman

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mlevkov/postman-exporter/pkg/types"
)

// apiBaseURL is the Postman API root. Declared as a var so tests can
// substitute an httptest server.
var apiBaseURL = "https://api.getpostman.com"

// apiKeyHeader carries the credential on every request.
const apiKeyHeader = "X-API-Key"

// defaultFetchTimeout bounds each collection content request. Name lookups
// carry no timeout.
const defaultFetchTimeout = 10 * time.Second

// Client calls the Postman API.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	fetchTimeout time.Duration
}

// NewClient returns a Client using httpClient for transport. A nil
// httpClient falls back to a default one. cfg.Timeout, when set, overrides
// the 10 s per-fetch timeout.
func NewClient(httpClient *http.Client, cfg types.HTTPConfig) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		httpClient:   httpClient,
		userAgent:    cfg.UserAgent,
		fetchTimeout: timeout,
	}
}

// do issues req and returns the status code and full body.
func (c *Client) do(req *http.Request, apiKey string) (int, []byte, error) {
	req.Header.Set(apiKeyHeader, apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// errorResponse is the body shape the Postman API uses for 401 responses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// classifyStatus maps a non-2xx Postman API response to a typed error:
// 401 carries the upstream message, 429 is a fixed rate-limit error, and
// everything else reports the status code.
func classifyStatus(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized:
		var er errorResponse
		if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
			return &AuthenticationError{Message: er.Error.Message}
		}
		return &AuthenticationError{Message: http.StatusText(http.StatusUnauthorized)}
	case http.StatusTooManyRequests:
		return &RateLimitError{}
	default:
		return &RetrievalError{StatusCode: statusCode}
	}
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
