package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mithunb9/RealRisk/internal/repository/models"
)

// CrimeStatsRepository reads the per-county crime dataset. Rows are keyed the
// way the source CSV names counties: "Collin County, TX".
type CrimeStatsRepository struct {
	db *sql.DB
}

func NewCrimeStatsRepository(db *sql.DB) *CrimeStatsRepository {
	return &CrimeStatsRepository{db: db}
}

const createCrimeStatsTable = `
	CREATE TABLE IF NOT EXISTS county_crime_stats (
		county_name TEXT PRIMARY KEY,
		crime_rate_per_100000 REAL NOT NULL,
		ranking INTEGER NOT NULL,
		arrest_count INTEGER NOT NULL,
		crime_count INTEGER NOT NULL
	)
`

// EnsureSchema creates the crime stats table when missing.
func (r *CrimeStatsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCrimeStatsTable); err != nil {
		return fmt.Errorf("create county_crime_stats: %w", err)
	}
	return nil
}

// GetCrimeStats returns the stats row for a county, or nil when the dataset
// has no row for it. Absence is data, not an error.
func (r *CrimeStatsRepository) GetCrimeStats(ctx context.Context, county, state string) (*models.CrimeStats, error) {
	const query = `
		SELECT county_name, crime_rate_per_100000, ranking, arrest_count, crime_count
		FROM county_crime_stats
		WHERE county_name = ?
	`

	key := fmt.Sprintf("%s County, %s", county, state)

	var stats models.CrimeStats
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&stats.CountyName,
		&stats.CrimeRate,
		&stats.Ranking,
		&stats.ArrestCount,
		&stats.CrimeCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query GetCrimeStats: %w", err)
	}

	return &stats, nil
}

// UpsertCrimeStats loads or refreshes one county row, used by dataset imports.
func (r *CrimeStatsRepository) UpsertCrimeStats(ctx context.Context, stats models.CrimeStats) error {
	const query = `
		INSERT INTO county_crime_stats (county_name, crime_rate_per_100000, ranking, arrest_count, crime_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(county_name) DO UPDATE SET
			crime_rate_per_100000 = excluded.crime_rate_per_100000,
			ranking = excluded.ranking,
			arrest_count = excluded.arrest_count,
			crime_count = excluded.crime_count
	`

	if _, err := r.db.ExecContext(ctx, query,
		stats.CountyName, stats.CrimeRate, stats.Ranking, stats.ArrestCount, stats.CrimeCount); err != nil {
		return fmt.Errorf("upsert county_crime_stats row: %w", err)
	}
	return nil
}
