package census

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ACS 5-year estimate variables and the facts they feed.
const (
	varTotalPopulation = "B01003_001E"
	varCommuteTime     = "B08012_001E"
	varBachelors       = "B15003_022E"
	varMedianIncome    = "B19013_001E"
	varLaborForce      = "B23025_002E"
	varEmployed        = "B23025_004E"
	varHousingUnits    = "B25003_001E"
	varOwnerOccupied   = "B25003_002E"
	varVacantUnits     = "B25002_003E"
	varMedianHomeValue = "B25077_001E"
)

var acsVariables = []string{
	varTotalPopulation, varCommuteTime, varBachelors, varMedianIncome,
	varLaborForce, varEmployed, varHousingUnits, varOwnerOccupied,
	varVacantUnits, varMedianHomeValue,
}

// Client fetches demographic facts from the Census Bureau ACS 5-year API,
// keyed by zip code tabulation area.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an ACS API client.
func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.census.gov/data/2023/acs/acs5",
		logger:  logger.Named("census-client"),
	}
}

// FetchFacts implements Fetcher. It returns nil with no error when the bureau
// has no data for the zip.
func (c *Client) FetchFacts(ctx context.Context, zip string) (*FactRecord, error) {
	params := url.Values{
		"get": {"NAME," + strings.Join(acsVariables, ",")},
		"for": {"zip code tabulation area:" + zip},
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("census request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		// The bureau reports unknown ZCTAs as empty responses.
		return nil, nil
	default:
		return nil, fmt.Errorf("census API error: status %d", resp.StatusCode)
	}

	// The ACS API returns a header row followed by one value row, with
	// every cell encoded as a string or null.
	var rows [][]*string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	values := make(map[string]float64, len(acsVariables))
	for i, name := range rows[0] {
		if name == nil || i >= len(rows[1]) || rows[1][i] == nil {
			continue
		}
		v, err := strconv.ParseFloat(*rows[1][i], 64)
		if err != nil {
			continue
		}
		values[*name] = v
	}

	return buildRecord(values), nil
}

// buildRecord derives the rate facts from raw estimates. Missing or
// non-positive denominators mean the bureau suppressed the tract, which the
// cache treats as absent data.
func buildRecord(values map[string]float64) *FactRecord {
	population := values[varTotalPopulation]
	laborForce := values[varLaborForce]
	housingUnits := values[varHousingUnits]
	income := values[varMedianIncome]
	homeValue := values[varMedianHomeValue]

	if population <= 0 || laborForce <= 0 || housingUnits <= 0 || income <= 0 || homeValue <= 0 {
		return nil
	}

	return &FactRecord{
		TotalPopulation:    population,
		MedianIncome:       income,
		EmploymentRate:     values[varEmployed] / laborForce,
		EducationRate:      values[varBachelors] / population,
		HomeOwnershipRate:  values[varOwnerOccupied] / housingUnits,
		VacancyRate:        values[varVacantUnits] / housingUnits,
		MedianHomeValue:    homeValue,
		MeanCommuteMinutes: values[varCommuteTime],
	}
}
