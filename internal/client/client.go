// Package client calls the Lingo server's translation routes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lingo/backend/internal/model"
)

// DefaultServerURL is where a local server listens by default.
const DefaultServerURL = "http://localhost:8080"

const maxResponseBody = 4 << 20

// APIError is a non-200 reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server status %d", e.StatusCode)
	}
	return fmt.Sprintf("server status %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for /api/languages and /api/translate.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client. An empty baseURL selects DefaultServerURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Languages fetches the language list.
func (c *Client) Languages(ctx context.Context) ([]model.Language, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("build languages request: %w", err)
	}

	var langs []model.Language
	if err := c.do(req, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// Translate posts one translation request.
func (c *Client) Translate(ctx context.Context, tr model.TranslationRequest) (*model.TranslationResult, error) {
	payload, err := json.Marshal(tr)
	if err != nil {
		return nil, fmt.Errorf("encode translate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/translate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res model.TranslationResult
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
