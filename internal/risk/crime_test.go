package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithunb9/RealRisk/internal/repository/models"
)

func TestCrimeRisk(t *testing.T) {
	t.Run("national average rate scores exactly 50", func(t *testing.T) {
		result := crimeRisk(&models.CrimeStats{
			CountyName: "Collin County, TX",
			CrimeRate:  380.7,
			Ranking:    1203,
		}, true)

		require.NotNil(t, result.RiskScore)
		assert.Equal(t, 50, *result.RiskScore)
		assert.Equal(t, Component{Label: "Crime Rate", Value: "380.7 per 100k"}, result.Components[0])
		assert.Equal(t, Component{Label: "County Ranking", Value: "#1203"}, result.Components[2])
	})

	t.Run("missing county data returns the neutral midpoint", func(t *testing.T) {
		result := crimeRisk(nil, true)

		require.NotNil(t, result.RiskScore)
		assert.Equal(t, 50, *result.RiskScore)
		assert.Equal(t, Components{{Label: "Crime Data", Value: "no data for county"}}, result.Components)
	})

	t.Run("below average maps linearly under 50", func(t *testing.T) {
		result := crimeRisk(&models.CrimeStats{CrimeRate: 190.35}, true)

		require.NotNil(t, result.RiskScore)
		assert.Equal(t, 25, *result.RiskScore)
	})

	t.Run("far above average clamps at 100 with raw score kept", func(t *testing.T) {
		stats := &models.CrimeStats{CrimeRate: 380.7 * 4}

		clamped := crimeRisk(stats, true)
		require.NotNil(t, clamped.RiskScore)
		assert.Equal(t, 100, *clamped.RiskScore)
		assert.Equal(t, Component{Label: "Unclamped Score", Value: "200"}, clamped.Components[len(clamped.Components)-1])

		unclamped := crimeRisk(stats, false)
		require.NotNil(t, unclamped.RiskScore)
		assert.Equal(t, 200, *unclamped.RiskScore)
	})
}
