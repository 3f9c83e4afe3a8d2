package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mithunb9/RealRisk/internal/repository/models"
)

// Column headers of the county crime dataset CSV.
const (
	colCountyName = "county_name"
	colCrimeRate  = "crime_rate_per_100000"
	colRanking    = "index"
	colArrests    = "CPOPARST"
	colCrimes     = "CPOPCRIM"
)

var requiredColumns = []string{colCountyName, colCrimeRate, colRanking, colArrests, colCrimes}

// ImportCSV loads the county crime dataset into the repository, upserting one
// row per county. Columns are resolved by header name, so column order does
// not matter. Rows with unparsable values are skipped. Returns the number of
// rows imported.
func (r *CrimeStatsRepository) ImportCSV(ctx context.Context, src io.Reader) (int, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return 0, fmt.Errorf("crime dataset missing column %q", name)
		}
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv row: %w", err)
		}

		stats, ok := parseCrimeRow(row, index)
		if !ok {
			continue
		}
		if err := r.UpsertCrimeStats(ctx, stats); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func parseCrimeRow(row []string, index map[string]int) (models.CrimeStats, bool) {
	field := func(name string) (string, bool) {
		i := index[name]
		if i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	name, ok := field(colCountyName)
	if !ok || name == "" {
		return models.CrimeStats{}, false
	}

	rateStr, ok := field(colCrimeRate)
	if !ok {
		return models.CrimeStats{}, false
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return models.CrimeStats{}, false
	}

	intField := func(col string) (int, bool) {
		s, ok := field(col)
		if !ok {
			return 0, false
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	ranking, ok := intField(colRanking)
	if !ok {
		return models.CrimeStats{}, false
	}
	arrests, ok := intField(colArrests)
	if !ok {
		return models.CrimeStats{}, false
	}
	crimes, ok := intField(colCrimes)
	if !ok {
		return models.CrimeStats{}, false
	}

	return models.CrimeStats{
		CountyName:  name,
		CrimeRate:   rate,
		Ranking:     ranking,
		ArrestCount: arrests,
		CrimeCount:  crimes,
	}, true
}
