package risk

import (
	"github.com/mithunb9/RealRisk/internal/census"
)

// National baseline constants the demographic facts are compared against.
const (
	baselineEducationRate   = 0.375
	baselineMedianIncome    = 37585.0
	baselineEmploymentRate  = 0.5925
	baselineHomeOwnership   = 0.656
	baselineVacancyRate     = 0.069
	baselineMedianHomeValue = 420400.0
)

var demographicTooltip = map[string]string{
	"Education Rate":          "Share of residents holding a bachelor's degree, vs the national baseline.",
	"Median Household Income": "Median household income for the zip, vs the national baseline.",
	"Employment Rate":         "Employed share of the labor force, vs the national baseline.",
	"Home Ownership":          "Owner-occupied share of housing units, vs the national baseline.",
	"Vacancy Rate":            "Vacant share of housing units; higher vacancy raises risk.",
	"Median Home Value":       "Median home value for the zip, vs the national baseline.",
}

// demographicRisk scores the demographic dimension from cached census facts.
// Each fact contributes its percent difference from the national baseline;
// vacancy contributes with inverted sign because higher vacancy is worse.
func demographicRisk(facts *census.FactRecord, clamp bool) SubScore {
	if facts == nil {
		return SubScore{
			RiskScore:  nil,
			Components: Components{},
			Error:      "no census data found",
		}
	}

	sum := percentDiffPoints(facts.EducationRate, baselineEducationRate) +
		percentDiffPoints(facts.MedianIncome, baselineMedianIncome) +
		percentDiffPoints(facts.EmploymentRate, baselineEmploymentRate) +
		percentDiffPoints(facts.HomeOwnershipRate, baselineHomeOwnership) -
		percentDiffPoints(facts.VacancyRate, baselineVacancyRate) +
		percentDiffPoints(facts.MedianHomeValue, baselineMedianHomeValue)

	raw := int(50 + sum/6)
	score, clamped := applyClamp(raw, clamp)

	components := Components{}
	components.Add("Education Rate", formatPercent(facts.EducationRate))
	components.Add("Median Household Income", formatDollars(facts.MedianIncome))
	components.Add("Employment Rate", formatPercent(facts.EmploymentRate))
	components.Add("Home Ownership", formatPercent(facts.HomeOwnershipRate))
	components.Add("Vacancy Rate", formatPercent(facts.VacancyRate))
	components.Add("Median Home Value", formatDollars(facts.MedianHomeValue))
	if clamped {
		components.Add("Unclamped Score", formatCount(raw))
	}

	return SubScore{
		RiskScore:  intPtr(score),
		Components: components,
		Tooltip:    demographicTooltip,
	}
}
