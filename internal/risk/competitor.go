package risk

import (
	"fmt"
)

// CompetitorStrategy selects how the competitor dimension is scored. The
// historical formula flip-flopped between a fixed score and one scaled by
// competitor count, so both are kept behind explicit configuration.
type CompetitorStrategy string

const (
	// CompetitorStrategyFixed returns a constant score whenever any
	// competitor is found. Current default.
	CompetitorStrategyFixed CompetitorStrategy = "fixed"
	// CompetitorStrategyCount scales the score by competitor count,
	// saturating at ten competitors. Legacy behavior.
	CompetitorStrategyCount CompetitorStrategy = "count"
)

// CompetitorPolicy holds the configurable constants for the competitor
// dimension.
type CompetitorPolicy struct {
	Strategy CompetitorStrategy
	// NoCompetitorScore is returned when zero competitors are found.
	NoCompetitorScore int
	// FixedScore is returned under the fixed strategy when any competitor
	// is found.
	FixedScore int
}

// DefaultCompetitorPolicy matches the latest observed behavior.
func DefaultCompetitorPolicy() CompetitorPolicy {
	return CompetitorPolicy{
		Strategy:          CompetitorStrategyFixed,
		NoCompetitorScore: 20,
		FixedScore:        60,
	}
}

var competitorTooltip = map[string]string{
	"Competitors Found": "Number of competing builders located near the site.",
	"Rating Score":      "Normalized competitor rating strength in [0, 1]; shown for context only.",
}

// competitorRisk scores the competitive dimension. The normalized rating
// score is always surfaced in the breakdown even when the strategy ignores it.
func competitorRisk(numCompetitors int, ratings []CompetitorRating, policy CompetitorPolicy) SubScore {
	if numCompetitors <= 0 {
		components := Components{}
		components.Add("Competitors Found", "0")
		return SubScore{
			RiskScore:  intPtr(policy.NoCompetitorScore),
			Components: components,
			Tooltip:    competitorTooltip,
		}
	}

	score := policy.FixedScore
	if policy.Strategy == CompetitorStrategyCount {
		saturation := float64(numCompetitors) / 10
		if saturation > 1 {
			saturation = 1
		}
		score = int(saturation * 100)
	}

	components := Components{}
	components.Add("Competitors Found", formatCount(numCompetitors))
	components.Add("Rating Score", fmt.Sprintf("%.2f", NormalizeRatings(ratings)))

	return SubScore{
		RiskScore:  intPtr(score),
		Components: components,
		Tooltip:    competitorTooltip,
	}
}
