package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/risk"
)

// Client fetches active alerts from the National Weather Service and
// summarizes them per county.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an NWS alerts client.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.weather.gov/alerts/",
		logger:  logger.Named("weather-client"),
	}
}

// FetchAlertSummary pulls the state's active alerts and tallies the ones
// whose area description mentions the county.
func (c *Client) FetchAlertSummary(ctx context.Context, state, county string) (*risk.AlertSummary, error) {
	params := url.Values{"area": {state}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alerts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API error: status %d", resp.StatusCode)
	}

	var payload alertsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return summarize(payload, county), nil
}

// summarize builds the per-county counter summary from the state-wide feed.
func summarize(payload alertsResponse, county string) *risk.AlertSummary {
	summary := &risk.AlertSummary{
		SeverityCount:  map[string]int{},
		CertaintyCount: map[string]int{},
		UrgencyCount:   map[string]int{},
		EventTypeCount: map[string]int{},
	}

	countyLower := strings.ToLower(county)
	for _, feature := range payload.Features {
		p := feature.Properties
		if !strings.Contains(strings.ToLower(p.AreaDesc), countyLower) {
			continue
		}
		summary.TotalEvents++
		summary.SeverityCount[orUnknown(p.Severity)]++
		summary.CertaintyCount[orUnknown(p.Certainty)]++
		summary.UrgencyCount[orUnknown(p.Urgency)]++
		summary.EventTypeCount[orUnknown(p.Event)]++
	}

	return summary
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// NWS API response types.

type alertsResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties properties `json:"properties"`
}

type properties struct {
	AreaDesc  string `json:"areaDesc"`
	Severity  string `json:"severity"`
	Certainty string `json:"certainty"`
	Urgency   string `json:"urgency"`
	Event     string `json:"event"`
}
