package risk

import (
	"context"

	"github.com/mithunb9/RealRisk/internal/census"
	"github.com/mithunb9/RealRisk/internal/repository/models"
)

// FactProvider returns cached census facts for a zip. A nil record with nil
// error means the upstream has no data for the key.
type FactProvider interface {
	GetFacts(ctx context.Context, zip string) (*census.FactRecord, error)
}

// CrimeProvider looks up per-county crime statistics. A nil result with nil
// error means no data for the county.
type CrimeProvider interface {
	GetCrimeStats(ctx context.Context, county, state string) (*models.CrimeStats, error)
}

// AirQualityProvider reads a point air-quality index. It fails with an error
// on any non-success upstream response.
type AirQualityProvider interface {
	FetchAQI(ctx context.Context, lat, lon float64) (float64, error)
}

// RegulatoryScorer rates regulatory and zoning difficulty 1-10 for a locality
// and returns the supporting narrative.
type RegulatoryScorer interface {
	ScoreRegulatoryDifficulty(ctx context.Context, city, county string) (RegulatoryAssessment, error)
}
