package risk

// Event types the environmental model tracks explicitly. Everything else
// folds into the "other" bucket.
const (
	eventFloodAdvisory   = "Flood Advisory"
	eventTornadoWatch    = "Tornado Watch"
	eventFloodWatch      = "Flood Watch"
	eventAirQualityAlert = "Air Quality Alert"
)

// Baseline national proportions for active-alert composition. Observed
// per-category shares of the county's total events are compared against
// these.
const (
	baselineFloodAdvisoryShare = 0.18
	baselineTornadoWatchShare  = 0.04
	baselineFloodWatchShare    = 0.11
	baselineAirQualityShare    = 0.07
	baselineOtherShare         = 0.60

	baselineMinorShare   = 0.45
	baselineSevereShare  = 0.20
	baselineExtremeShare = 0.02
)

var environmentTooltip = map[string]string{
	"Total Events":       "Active weather alerts covering the county.",
	"Flood Advisories":   "Active flood advisories.",
	"Tornado Watches":    "Active tornado watches.",
	"Flood Watches":      "Active flood watches.",
	"Air Quality Alerts": "Air quality alerts, including real-time AQI readings merged in.",
	"Other Events":       "Alerts outside the named weather categories.",
	"Event Pressure":     "Legacy qualitative bucket for the overall event count.",
}

// environmentRisk scores the environmental dimension from the alert summary.
// Event-type shares add to the score and severity shares subtract, each as a
// percent difference from its baseline proportion.
func environmentRisk(alerts *AlertSummary, clamp bool) SubScore {
	if alerts == nil || alerts.TotalEvents == 0 {
		return SubScore{
			RiskScore:  intPtr(0),
			Components: Components{},
		}
	}

	total := float64(alerts.TotalEvents)
	floodAdvisories := alerts.EventTypeCount[eventFloodAdvisory]
	tornadoWatches := alerts.EventTypeCount[eventTornadoWatch]
	floodWatches := alerts.EventTypeCount[eventFloodWatch]
	airQualityAlerts := alerts.EventTypeCount[eventAirQualityAlert]
	// Air quality alerts are pseudo-events injected after the weather fetch;
	// they stay inside the "other" remainder and get their own share on top.
	other := alerts.TotalEvents - (floodAdvisories + tornadoWatches + floodWatches)

	minor := alerts.SeverityCount["Minor"]
	severe := alerts.SeverityCount["Severe"]
	extreme := alerts.SeverityCount["Extreme"]

	sum := percentDiffPoints(float64(floodAdvisories)/total, baselineFloodAdvisoryShare) +
		percentDiffPoints(float64(tornadoWatches)/total, baselineTornadoWatchShare) +
		percentDiffPoints(float64(floodWatches)/total, baselineFloodWatchShare) +
		percentDiffPoints(float64(airQualityAlerts)/total, baselineAirQualityShare) +
		percentDiffPoints(float64(other)/total, baselineOtherShare) -
		percentDiffPoints(float64(minor)/total, baselineMinorShare) -
		percentDiffPoints(float64(severe)/total, baselineSevereShare) -
		percentDiffPoints(float64(extreme)/total, baselineExtremeShare)

	raw := int(50 + sum/8)
	score, clamped := applyClamp(raw, clamp)

	components := Components{}
	components.Add("Total Events", formatCount(alerts.TotalEvents))
	components.Add("Flood Advisories", formatCount(floodAdvisories))
	components.Add("Tornado Watches", formatCount(tornadoWatches))
	components.Add("Flood Watches", formatCount(floodWatches))
	components.Add("Air Quality Alerts", formatCount(airQualityAlerts))
	components.Add("Other Events", formatCount(other))

	bucket := BucketEventCount(alerts.TotalEvents)
	components.Add("Event Pressure", string(bucket)+" ("+formatCount(bucket.Weight())+")")
	if clamped {
		components.Add("Unclamped Score", formatCount(raw))
	}

	return SubScore{
		RiskScore:  intPtr(score),
		Components: components,
		Tooltip:    environmentTooltip,
	}
}
