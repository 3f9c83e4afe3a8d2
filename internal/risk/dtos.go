package risk

import (
	"bytes"
	"encoding/json"

	"github.com/mithunb9/RealRisk/internal/census"
)

// Location is the resolved geography for one scoring request.
type Location struct {
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	County    string   `json:"county,omitempty"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zip_code"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// CompetitorRating is one competitor's rating lookup result. Rating is nil
// when the directory lists the business without a star rating.
type CompetitorRating struct {
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"review_count"`
}

// AlertSummary aggregates the active weather alerts for a county. It is
// built fresh per request and never cached.
type AlertSummary struct {
	TotalEvents    int            `json:"total_events"`
	SeverityCount  map[string]int `json:"severity_count"`
	CertaintyCount map[string]int `json:"certainty_count"`
	UrgencyCount   map[string]int `json:"urgency_count"`
	EventTypeCount map[string]int `json:"event_type_count"`
}

// WithEvent returns a copy of the summary with count occurrences of the named
// event type added. The receiver is never modified; callers hand the summary
// to calculators without hidden mutation of their own data.
func (a *AlertSummary) WithEvent(event string, count int) *AlertSummary {
	merged := &AlertSummary{
		SeverityCount:  map[string]int{},
		CertaintyCount: map[string]int{},
		UrgencyCount:   map[string]int{},
		EventTypeCount: map[string]int{},
	}
	if a != nil {
		merged.TotalEvents = a.TotalEvents
		for k, v := range a.SeverityCount {
			merged.SeverityCount[k] = v
		}
		for k, v := range a.CertaintyCount {
			merged.CertaintyCount[k] = v
		}
		for k, v := range a.UrgencyCount {
			merged.UrgencyCount[k] = v
		}
		for k, v := range a.EventTypeCount {
			merged.EventTypeCount[k] = v
		}
	}
	merged.EventTypeCount[event] += count
	merged.TotalEvents += count
	return merged
}

// Component is one labeled, display-formatted contribution to a sub-score.
type Component struct {
	Label string
	Value string
}

// Components is an insertion-ordered label/value mapping. It marshals to a
// JSON object whose keys keep insertion order, matching how the breakdown is
// rendered to the user.
type Components []Component

func (c *Components) Add(label, value string) {
	*c = append(*c, Component{Label: label, Value: value})
}

func (c Components) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, comp := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(comp.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(comp.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SubScore is one risk dimension's result. RiskScore is nil only when the
// dimension's required data is absent. A SubScore is immutable once returned
// by its calculator.
type SubScore struct {
	RiskScore  *int              `json:"risk_score"`
	Components Components        `json:"components"`
	Tooltip    map[string]string `json:"tooltip,omitempty"`
	Error      string            `json:"error,omitempty"`
	Response   string            `json:"response,omitempty"`
}

// RegulatoryAssessment is the output of the regulatory difficulty scorer.
type RegulatoryAssessment struct {
	Score     int    `json:"score"`
	Narrative string `json:"narrative"`
}

// ReportContext carries the raw signal snapshot alongside the sub-scores.
type ReportContext struct {
	Location        Location           `json:"location"`
	Facts           *census.FactRecord `json:"facts,omitempty"`
	Alerts          *AlertSummary      `json:"alerts,omitempty"`
	AirQualityIndex *float64           `json:"air_quality_index,omitempty"`
}

// CompositeReport is the full aggregated result for one request. It is owned
// by the Aggregator for the duration of the request and never shared.
type CompositeReport struct {
	DemographicRisk SubScore      `json:"demographic_risk"`
	CompetitorRisk  SubScore      `json:"competitor_risk"`
	EnvironmentRisk SubScore      `json:"environment_risk"`
	RegulatoryRisk  SubScore      `json:"regulatory_risk"`
	CrimeRisk       SubScore      `json:"crime_risk"`
	Context         ReportContext `json:"context"`
}

// Request is the input to one composite risk computation. Competitor ratings
// and alerts are fetched by the caller's thin collaborator clients.
type Request struct {
	Location          Location
	NumCompetitors    int
	CompetitorRatings []CompetitorRating
	Alerts            *AlertSummary
}

func intPtr(v int) *int {
	return &v
}
