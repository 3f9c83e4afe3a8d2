package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/risk"
)

// Client looks up competitor builders in the Yelp business directory.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a Yelp search client.
func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.yelp.com/v3/businesses/search",
		logger:  logger.Named("ratings-client"),
	}
}

// FetchRatings returns the best directory match for a competitor name near
// the location, or nil when the directory has no match.
func (c *Client) FetchRatings(ctx context.Context, name, location string) (*risk.CompetitorRating, error) {
	params := url.Values{
		"term":       {name},
		"location":   {location},
		"categories": {"contractors"},
		"limit":      {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ratings request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yelp API error: status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Businesses) == 0 {
		return nil, nil
	}

	b := payload.Businesses[0]
	return &risk.CompetitorRating{
		Name:        b.Name,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
	}, nil
}

// Yelp API response types.

type searchResponse struct {
	Businesses []business `json:"businesses"`
}

type business struct {
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"review_count"`
}
