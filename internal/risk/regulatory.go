package risk

var regulatoryTooltip = map[string]string{
	"Regulatory Difficulty": "How hard the local zoning and permitting landscape is to navigate as a builder, scored 1-10.",
}

// regulatoryRisk passes the external assessment through verbatim: the 1-10
// difficulty score becomes the risk score and the narrative rides along as
// auxiliary response text.
func regulatoryRisk(assessment *RegulatoryAssessment) SubScore {
	if assessment == nil {
		return SubScore{
			RiskScore:  nil,
			Components: Components{},
			Error:      "regulatory assessment unavailable",
		}
	}

	components := Components{}
	components.Add("Regulatory Difficulty", formatScoreOutOf(assessment.Score, 10))

	return SubScore{
		RiskScore:  intPtr(assessment.Score),
		Components: components,
		Tooltip:    regulatoryTooltip,
		Response:   assessment.Narrative,
	}
}
