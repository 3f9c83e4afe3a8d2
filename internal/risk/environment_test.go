package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentRisk(t *testing.T) {
	t.Run("no alert data scores zero with empty components", func(t *testing.T) {
		result := environmentRisk(nil, true)

		require.NotNil(t, result.RiskScore)
		assert.Equal(t, 0, *result.RiskScore)
		assert.Empty(t, result.Components)
	})

	t.Run("summary with zero events scores zero", func(t *testing.T) {
		result := environmentRisk(&AlertSummary{TotalEvents: 0}, true)

		require.NotNil(t, result.RiskScore)
		assert.Equal(t, 0, *result.RiskScore)
	})

	t.Run("alert mix produces a defined score and full breakdown", func(t *testing.T) {
		alerts := &AlertSummary{
			TotalEvents: 10,
			SeverityCount: map[string]int{
				"Minor":  4,
				"Severe": 2,
			},
			EventTypeCount: map[string]int{
				eventFloodAdvisory:   2,
				eventTornadoWatch:    1,
				eventFloodWatch:      1,
				eventAirQualityAlert: 1,
				"Wind Advisory":      5,
			},
		}

		result := environmentRisk(alerts, true)

		require.NotNil(t, result.RiskScore)
		assert.GreaterOrEqual(t, *result.RiskScore, 0)
		assert.LessOrEqual(t, *result.RiskScore, 100)

		labels := make([]string, 0, len(result.Components))
		for _, comp := range result.Components {
			labels = append(labels, comp.Label)
		}
		assert.Equal(t, []string{
			"Total Events", "Flood Advisories", "Tornado Watches", "Flood Watches",
			"Air Quality Alerts", "Other Events", "Event Pressure",
		}, labels)

		assert.Equal(t, Component{Label: "Other Events", Value: "6"}, result.Components[5])
		assert.Equal(t, Component{Label: "Event Pressure", Value: "extreme (100)"}, result.Components[6])
	})

	t.Run("severity-heavy mix scores lower than type-heavy mix", func(t *testing.T) {
		severe := environmentRisk(&AlertSummary{
			TotalEvents:   4,
			SeverityCount: map[string]int{"Extreme": 4},
			EventTypeCount: map[string]int{
				"Wind Advisory": 4,
			},
		}, false)

		mild := environmentRisk(&AlertSummary{
			TotalEvents:   4,
			SeverityCount: map[string]int{},
			EventTypeCount: map[string]int{
				eventFloodAdvisory: 4,
			},
		}, false)

		require.NotNil(t, severe.RiskScore)
		require.NotNil(t, mild.RiskScore)
		assert.Less(t, *severe.RiskScore, *mild.RiskScore)
	})
}

func TestAlertSummaryWithEvent(t *testing.T) {
	t.Run("merge copies instead of mutating the receiver", func(t *testing.T) {
		original := &AlertSummary{
			TotalEvents:    2,
			SeverityCount:  map[string]int{"Minor": 2},
			EventTypeCount: map[string]int{eventFloodWatch: 2},
		}

		merged := original.WithEvent(eventAirQualityAlert, 1)

		assert.Equal(t, 3, merged.TotalEvents)
		assert.Equal(t, 1, merged.EventTypeCount[eventAirQualityAlert])
		assert.Equal(t, 2, merged.EventTypeCount[eventFloodWatch])

		// Caller-supplied summary is untouched.
		assert.Equal(t, 2, original.TotalEvents)
		_, present := original.EventTypeCount[eventAirQualityAlert]
		assert.False(t, present)
	})

	t.Run("nil receiver starts a fresh summary", func(t *testing.T) {
		var none *AlertSummary
		merged := none.WithEvent(eventAirQualityAlert, 1)

		assert.Equal(t, 1, merged.TotalEvents)
		assert.Equal(t, 1, merged.EventTypeCount[eventAirQualityAlert])
	})
}
