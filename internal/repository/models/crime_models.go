package models

// CrimeStats is one county's row from the crime dataset.
type CrimeStats struct {
	CountyName  string
	CrimeRate   float64 // offenses per 100k residents
	Ranking     int
	ArrestCount int
	CrimeCount  int
}
