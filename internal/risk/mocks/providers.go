package mocks

import (
	"context"
	"errors"

	"github.com/mithunb9/RealRisk/internal/census"
	"github.com/mithunb9/RealRisk/internal/repository/models"
	"github.com/mithunb9/RealRisk/internal/risk"
)

// MockFactProvider is a func-field mock of risk.FactProvider for testing the
// aggregator.
type MockFactProvider struct {
	GetFactsFunc func(ctx context.Context, zip string) (*census.FactRecord, error)
}

func (m *MockFactProvider) GetFacts(ctx context.Context, zip string) (*census.FactRecord, error) {
	if m.GetFactsFunc != nil {
		return m.GetFactsFunc(ctx, zip)
	}
	return nil, errors.New("GetFactsFunc not implemented")
}

// MockCrimeProvider is a func-field mock of risk.CrimeProvider.
type MockCrimeProvider struct {
	GetCrimeStatsFunc func(ctx context.Context, county, state string) (*models.CrimeStats, error)
}

func (m *MockCrimeProvider) GetCrimeStats(ctx context.Context, county, state string) (*models.CrimeStats, error) {
	if m.GetCrimeStatsFunc != nil {
		return m.GetCrimeStatsFunc(ctx, county, state)
	}
	return nil, errors.New("GetCrimeStatsFunc not implemented")
}

// MockAirQualityProvider is a func-field mock of risk.AirQualityProvider.
type MockAirQualityProvider struct {
	FetchAQIFunc func(ctx context.Context, lat, lon float64) (float64, error)
}

func (m *MockAirQualityProvider) FetchAQI(ctx context.Context, lat, lon float64) (float64, error) {
	if m.FetchAQIFunc != nil {
		return m.FetchAQIFunc(ctx, lat, lon)
	}
	return 0, errors.New("FetchAQIFunc not implemented")
}

// MockRegulatoryScorer is a func-field mock of risk.RegulatoryScorer.
type MockRegulatoryScorer struct {
	ScoreRegulatoryDifficultyFunc func(ctx context.Context, city, county string) (risk.RegulatoryAssessment, error)
}

func (m *MockRegulatoryScorer) ScoreRegulatoryDifficulty(ctx context.Context, city, county string) (risk.RegulatoryAssessment, error) {
	if m.ScoreRegulatoryDifficultyFunc != nil {
		return m.ScoreRegulatoryDifficultyFunc(ctx, city, county)
	}
	return risk.RegulatoryAssessment{}, errors.New("ScoreRegulatoryDifficultyFunc not implemented")
}
