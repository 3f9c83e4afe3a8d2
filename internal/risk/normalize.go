package risk

import (
	"errors"
)

// ErrUndefinedPercentDifference is returned when both observed and baseline
// are zero; the metric has no defined value there and callers must guard.
var ErrUndefinedPercentDifference = errors.New("percent difference undefined when observed and baseline are both zero")

// PercentDifference is the symmetric relative deviation of an observed value
// from a baseline: (observed - baseline) / ((observed + baseline) / 2). For
// positive inputs the result lies in roughly [-2, 2].
func PercentDifference(observed, baseline float64) (float64, error) {
	if observed == 0 && baseline == 0 {
		return 0, ErrUndefinedPercentDifference
	}
	return (observed - baseline) / ((observed + baseline) / 2), nil
}

// percentDiffPoints expresses the percent difference in percentage points.
// All calculator baselines are nonzero constants, so the undefined case is
// unreachable and folded to zero.
func percentDiffPoints(observed, baseline float64) float64 {
	pd, err := PercentDifference(observed, baseline)
	if err != nil {
		return 0
	}
	return pd * 100
}

// NormalizeRatings maps a list of competitor ratings to a single score in
// [0, 1]. Unrated competitors get a neutral base, unreviewed ones are
// penalized, and review volume scales confidence. An empty list yields 0.
func NormalizeRatings(competitors []CompetitorRating) float64 {
	if len(competitors) == 0 {
		return 0.0
	}

	total := 0.0
	for _, competitor := range competitors {
		base := 0.5
		if competitor.Rating != nil {
			base = (*competitor.Rating / 5.0) * (*competitor.Rating / 5.0)
		}

		if competitor.ReviewCount > 0 {
			confidence := float64(competitor.ReviewCount) / 100
			if confidence > 1 {
				confidence = 1
			}
			total += base * (0.5 + 0.5*confidence)
		} else {
			total += base * 0.3
		}
	}

	return total / float64(len(competitors))
}

// SeverityBucket is the qualitative label for an event count under the legacy
// event-risk model.
type SeverityBucket string

const (
	SeverityMinor    SeverityBucket = "minor"
	SeverityModerate SeverityBucket = "moderate"
	SeveritySevere   SeverityBucket = "severe"
	SeverityExtreme  SeverityBucket = "extreme"
)

// BucketEventCount maps an event count to its legacy severity bucket.
func BucketEventCount(n int) SeverityBucket {
	switch {
	case n <= 0:
		return SeverityMinor
	case n == 1:
		return SeverityModerate
	case n == 2:
		return SeveritySevere
	default:
		return SeverityExtreme
	}
}

// Weight returns the fixed legacy scoring weight for the bucket.
func (b SeverityBucket) Weight() int {
	switch b {
	case SeverityMinor:
		return 25
	case SeverityModerate:
		return 50
	case SeveritySevere:
		return 75
	default:
		return 100
	}
}
