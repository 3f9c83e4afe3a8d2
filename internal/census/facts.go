package census

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// FactRecord is an immutable snapshot of the demographic facts for one zip
// code tabulation area. It is created once on fetch and never mutated.
type FactRecord struct {
	TotalPopulation    float64   `json:"total_population"`
	MedianIncome       float64   `json:"median_household_income"`
	EmploymentRate     float64   `json:"employment_rate"`
	EducationRate      float64   `json:"bachelors_degree_rate"`
	HomeOwnershipRate  float64   `json:"home_ownership_rate"`
	VacancyRate        float64   `json:"vacancy_rate"`
	MedianHomeValue    float64   `json:"median_house_value"`
	MeanCommuteMinutes float64   `json:"mean_travel_time_to_work"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// Valid reports whether a record read back from the cache carries usable
// values. A record that fails validation is treated as missing data rather
// than surfaced to calculators.
func (r *FactRecord) Valid() bool {
	if r == nil {
		return false
	}
	rates := []float64{r.EmploymentRate, r.EducationRate, r.HomeOwnershipRate, r.VacancyRate}
	for _, rate := range rates {
		if rate < 0 || rate > 1 {
			return false
		}
	}
	return r.MedianIncome > 0 && r.MedianHomeValue > 0
}

var ErrInvalidZip = errors.New("invalid zip code")

// NormalizeZip canonicalizes a raw zip code into a GeoKey: the five-digit
// prefix with any +4 extension stripped. Equality on the result is exact
// string match.
func NormalizeZip(raw string) (string, error) {
	zip := strings.TrimSpace(raw)
	if i := strings.IndexByte(zip, '-'); i >= 0 {
		zip = zip[:i]
	}
	if len(zip) != 5 {
		return "", ErrInvalidZip
	}
	for _, r := range zip {
		if !unicode.IsDigit(r) {
			return "", ErrInvalidZip
		}
	}
	return zip, nil
}
