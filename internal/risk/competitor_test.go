package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitorRisk(t *testing.T) {
	policy := DefaultCompetitorPolicy()

	t.Run("zero competitors return the low baseline", func(t *testing.T) {
		result := competitorRisk(0, nil, policy)

		require.NotNil(t, result.RiskScore)
		assert.Equal(t, policy.NoCompetitorScore, *result.RiskScore)
		assert.Equal(t, Components{{Label: "Competitors Found", Value: "0"}}, result.Components)
	})

	t.Run("fixed strategy ignores competitor count", func(t *testing.T) {
		few := competitorRisk(2, nil, policy)
		many := competitorRisk(40, nil, policy)

		require.NotNil(t, few.RiskScore)
		require.NotNil(t, many.RiskScore)
		assert.Equal(t, policy.FixedScore, *few.RiskScore)
		assert.Equal(t, *few.RiskScore, *many.RiskScore)
	})

	t.Run("rating score stays in the breakdown for display", func(t *testing.T) {
		result := competitorRisk(1, []CompetitorRating{
			{Name: "Acme Builders", Rating: floatPtr(5), ReviewCount: 200},
		}, policy)

		assert.Equal(t, Component{Label: "Rating Score", Value: "1.00"}, result.Components[1])
	})

	t.Run("count strategy scales with competitor count", func(t *testing.T) {
		countPolicy := policy
		countPolicy.Strategy = CompetitorStrategyCount

		cases := []struct {
			competitors int
			score       int
		}{
			{1, 10},
			{5, 50},
			{10, 100},
			{25, 100}, // saturates at ten
		}
		for _, tc := range cases {
			result := competitorRisk(tc.competitors, nil, countPolicy)
			require.NotNil(t, result.RiskScore)
			assert.Equal(t, tc.score, *result.RiskScore)
		}
	})
}
