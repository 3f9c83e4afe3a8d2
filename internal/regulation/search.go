package regulation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Searcher runs a web search and returns the raw result text fed into the
// scoring prompts.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// SerperClient implements Searcher against the Serper search API.
type SerperClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewSerperClient creates a Serper search client.
func NewSerperClient(apiKey string, timeout time.Duration) *SerperClient {
	return &SerperClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://google.serper.dev/search",
	}
}

// Search runs one US-scoped query and returns the response body verbatim.
func (c *SerperClient) Search(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"q":        query,
		"gl":       "us",
		"location": "United States",
		"num":      10,
	})
	if err != nil {
		return "", fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("serper API error: status %d", resp.StatusCode)
	}

	results, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(results), nil
}
