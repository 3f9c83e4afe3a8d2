package risk

import (
	"github.com/mithunb9/RealRisk/internal/repository/models"
)

// nationalAvgCrimeRate is the fixed national average offenses per 100k
// residents that county rates are scored against.
const nationalAvgCrimeRate = 380.7

var crimeTooltip = map[string]string{
	"Crime Rate":       "County offenses per 100k residents.",
	"National Average": "Fixed national average rate used as the midpoint.",
	"County Ranking":   "County position in the national crime-rate ranking.",
}

// crimeRisk maps the county crime rate linearly around the national average:
// the average lands exactly on 50, below-average counties fall in [0, 50),
// and above-average counties are unbounded before clamping.
func crimeRisk(stats *models.CrimeStats, clamp bool) SubScore {
	if stats == nil {
		components := Components{}
		components.Add("Crime Data", "no data for county")
		return SubScore{
			RiskScore:  intPtr(50),
			Components: components,
			Tooltip:    crimeTooltip,
		}
	}

	raw := int(stats.CrimeRate / nationalAvgCrimeRate * 50)
	score, clamped := applyClamp(raw, clamp)

	components := Components{}
	components.Add("Crime Rate", formatRate(stats.CrimeRate))
	components.Add("National Average", formatRate(nationalAvgCrimeRate))
	components.Add("County Ranking", "#"+formatCount(stats.Ranking))
	if clamped {
		components.Add("Unclamped Score", formatCount(raw))
	}

	return SubScore{
		RiskScore:  intPtr(score),
		Components: components,
		Tooltip:    crimeTooltip,
	}
}
