package risk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/census"
	"github.com/mithunb9/RealRisk/internal/repository/models"
	"github.com/mithunb9/RealRisk/internal/risk"
	"github.com/mithunb9/RealRisk/internal/risk/mocks"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func planoFacts() *census.FactRecord {
	return &census.FactRecord{
		TotalPopulation:    72000,
		MedianIncome:       37585,
		EmploymentRate:     0.5925,
		EducationRate:      0.375,
		HomeOwnershipRate:  0.656,
		VacancyRate:        0.069,
		MedianHomeValue:    420400,
		MeanCommuteMinutes: 26.4,
	}
}

func planoRequest() risk.Request {
	return risk.Request{
		Location: risk.Location{
			City:      "Plano",
			County:    "Collin",
			State:     "TX",
			ZipCode:   "75024",
			Latitude:  float64Ptr(33.075),
			Longitude: float64Ptr(-96.833),
		},
		NumCompetitors: 2,
		CompetitorRatings: []risk.CompetitorRating{
			{Name: "Acme Builders", Rating: float64Ptr(4.5), ReviewCount: 120},
		},
		Alerts: &risk.AlertSummary{
			TotalEvents:    2,
			SeverityCount:  map[string]int{"Minor": 2},
			EventTypeCount: map[string]int{"Flood Watch": 2},
		},
	}
}

func workingProviders() (*mocks.MockFactProvider, *mocks.MockCrimeProvider, *mocks.MockAirQualityProvider, *mocks.MockRegulatoryScorer) {
	facts := &mocks.MockFactProvider{
		GetFactsFunc: func(ctx context.Context, zip string) (*census.FactRecord, error) {
			return planoFacts(), nil
		},
	}
	crime := &mocks.MockCrimeProvider{
		GetCrimeStatsFunc: func(ctx context.Context, county, state string) (*models.CrimeStats, error) {
			return &models.CrimeStats{CountyName: "Collin County, TX", CrimeRate: 380.7, Ranking: 1203}, nil
		},
	}
	air := &mocks.MockAirQualityProvider{
		FetchAQIFunc: func(ctx context.Context, lat, lon float64) (float64, error) {
			return 42, nil
		},
	}
	regulatory := &mocks.MockRegulatoryScorer{
		ScoreRegulatoryDifficultyFunc: func(ctx context.Context, city, county string) (risk.RegulatoryAssessment, error) {
			return risk.RegulatoryAssessment{Score: 7, Narrative: "zoning is strict"}, nil
		},
	}
	return facts, crime, air, regulatory
}

func newAggregator(facts risk.FactProvider, crime risk.CrimeProvider, air risk.AirQualityProvider, regulatory risk.RegulatoryScorer) *risk.Aggregator {
	return risk.NewAggregator(facts, crime, air, regulatory, risk.Config{
		Competitor:  risk.DefaultCompetitorPolicy(),
		ClampScores: true,
	}, zap.NewNop(), nil)
}

func TestComputeRisk(t *testing.T) {
	ctx := context.Background()

	t.Run("all collaborators healthy", func(t *testing.T) {
		facts, crime, air, regulatory := workingProviders()
		aggregator := newAggregator(facts, crime, air, regulatory)

		report, err := aggregator.ComputeRisk(ctx, planoRequest())

		require.NoError(t, err)

		require.NotNil(t, report.DemographicRisk.RiskScore)
		assert.Equal(t, 50, *report.DemographicRisk.RiskScore)

		require.NotNil(t, report.CompetitorRisk.RiskScore)
		assert.Equal(t, 60, *report.CompetitorRisk.RiskScore)

		require.NotNil(t, report.CrimeRisk.RiskScore)
		assert.Equal(t, 50, *report.CrimeRisk.RiskScore)

		require.NotNil(t, report.RegulatoryRisk.RiskScore)
		assert.Equal(t, 7, *report.RegulatoryRisk.RiskScore)
		assert.Equal(t, "zoning is strict", report.RegulatoryRisk.Response)

		require.NotNil(t, report.EnvironmentRisk.RiskScore)

		assert.Equal(t, planoFacts().MedianIncome, report.Context.Facts.MedianIncome)
		require.NotNil(t, report.Context.AirQualityIndex)
		assert.Equal(t, 42.0, *report.Context.AirQualityIndex)
	})

	t.Run("air quality merges as pseudo-event without mutating input", func(t *testing.T) {
		facts, crime, air, regulatory := workingProviders()
		aggregator := newAggregator(facts, crime, air, regulatory)

		req := planoRequest()
		report, err := aggregator.ComputeRisk(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Context.Alerts.TotalEvents)
		assert.Equal(t, 1, report.Context.Alerts.EventTypeCount["Air Quality Alert"])

		// Caller's summary stays untouched.
		assert.Equal(t, 2, req.Alerts.TotalEvents)
		_, present := req.Alerts.EventTypeCount["Air Quality Alert"]
		assert.False(t, present)
	})

	t.Run("air quality skipped without coordinates", func(t *testing.T) {
		facts, crime, air, regulatory := workingProviders()
		air.FetchAQIFunc = func(ctx context.Context, lat, lon float64) (float64, error) {
			t.Fatal("FetchAQI must not be called without coordinates")
			return 0, nil
		}
		aggregator := newAggregator(facts, crime, air, regulatory)

		req := planoRequest()
		req.Location.Latitude = nil
		req.Location.Longitude = nil

		report, err := aggregator.ComputeRisk(ctx, req)

		require.NoError(t, err)
		assert.Nil(t, report.Context.AirQualityIndex)
		assert.Equal(t, 2, report.Context.Alerts.TotalEvents)
	})

	t.Run("one failing collaborator degrades only its dimension", func(t *testing.T) {
		facts, crime, air, regulatory := workingProviders()
		regulatory.ScoreRegulatoryDifficultyFunc = func(ctx context.Context, city, county string) (risk.RegulatoryAssessment, error) {
			return risk.RegulatoryAssessment{}, errors.New("rate limited")
		}
		air.FetchAQIFunc = func(ctx context.Context, lat, lon float64) (float64, error) {
			return 0, errors.New("upstream 502")
		}
		aggregator := newAggregator(facts, crime, air, regulatory)

		report, err := aggregator.ComputeRisk(ctx, planoRequest())

		require.NoError(t, err)
		assert.Nil(t, report.RegulatoryRisk.RiskScore)
		assert.Equal(t, "regulatory assessment unavailable", report.RegulatoryRisk.Error)
		assert.Nil(t, report.Context.AirQualityIndex)

		// The other dimensions still compute.
		require.NotNil(t, report.DemographicRisk.RiskScore)
		require.NotNil(t, report.CompetitorRisk.RiskScore)
		require.NotNil(t, report.CrimeRisk.RiskScore)
		require.NotNil(t, report.EnvironmentRisk.RiskScore)
	})

	t.Run("missing facts yield demographic no-data sentinel", func(t *testing.T) {
		facts, crime, air, regulatory := workingProviders()
		facts.GetFactsFunc = func(ctx context.Context, zip string) (*census.FactRecord, error) {
			return nil, nil
		}
		aggregator := newAggregator(facts, crime, air, regulatory)

		report, err := aggregator.ComputeRisk(ctx, planoRequest())

		require.NoError(t, err)
		assert.Nil(t, report.DemographicRisk.RiskScore)
		assert.Equal(t, "no census data found", report.DemographicRisk.Error)
		assert.Nil(t, report.Context.Facts)
	})

	t.Run("nil optional collaborators report no data", func(t *testing.T) {
		facts, _, _, _ := workingProviders()
		aggregator := newAggregator(facts, nil, nil, nil)

		req := planoRequest()
		req.Alerts = nil

		report, err := aggregator.ComputeRisk(ctx, req)

		require.NoError(t, err)

		require.NotNil(t, report.CrimeRisk.RiskScore)
		assert.Equal(t, 50, *report.CrimeRisk.RiskScore)

		assert.Nil(t, report.RegulatoryRisk.RiskScore)

		require.NotNil(t, report.EnvironmentRisk.RiskScore)
		assert.Equal(t, 0, *report.EnvironmentRisk.RiskScore)
		assert.Empty(t, report.EnvironmentRisk.Components)
	})

	t.Run("nil fact provider panics", func(t *testing.T) {
		assert.Panics(t, func() {
			risk.NewAggregator(nil, nil, nil, nil, risk.Config{}, zap.NewNop(), nil)
		})
	})
}
