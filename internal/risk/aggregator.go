package risk

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mithunb9/RealRisk/internal/census"
	"github.com/mithunb9/RealRisk/internal/observability"
	"github.com/mithunb9/RealRisk/internal/repository/models"
)

// Config carries the aggregator's scoring policy knobs.
type Config struct {
	Competitor CompetitorPolicy
	// ClampScores limits final sub-scores to [0, 100]; the unclamped value
	// stays visible in the component breakdown.
	ClampScores bool
}

// Aggregator orchestrates the five sub-score calculators and assembles the
// composite report. It owns no request state; every call works on its own
// copied inputs.
type Aggregator struct {
	facts      FactProvider
	crime      CrimeProvider
	air        AirQualityProvider
	regulatory RegulatoryScorer
	cfg        Config
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAggregator creates an Aggregator. The fact provider is required; the
// crime, air-quality, and regulatory collaborators may be nil, in which case
// their dimensions report no data.
func NewAggregator(facts FactProvider, crime CrimeProvider, air AirQualityProvider, regulatory RegulatoryScorer, cfg Config, logger *zap.Logger, metrics *observability.Metrics) *Aggregator {
	if facts == nil {
		panic("fact provider must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Competitor.Strategy == "" {
		cfg.Competitor = DefaultCompetitorPolicy()
	}
	return &Aggregator{
		facts:      facts,
		crime:      crime,
		air:        air,
		regulatory: regulatory,
		cfg:        cfg,
		logger:     logger.Named("aggregator"),
		metrics:    metrics,
	}
}

// ComputeRisk runs every calculator and merges the results. A failure in any
// single collaborator degrades only its own dimension; the composite report
// is always returned.
func (a *Aggregator) ComputeRisk(ctx context.Context, req Request) (CompositeReport, error) {
	started := time.Now()

	alerts, aqi := a.mergeAirQuality(ctx, req)

	var (
		report CompositeReport
		facts  *census.FactRecord
	)

	// The calculators share no mutable state; each goroutine owns exactly
	// one report slot.
	var g errgroup.Group

	g.Go(func() error {
		facts = a.fetchFacts(ctx, req.Location.ZipCode)
		report.DemographicRisk = demographicRisk(facts, a.cfg.ClampScores)
		if report.DemographicRisk.RiskScore == nil {
			a.countNoData("demographic")
		}
		return nil
	})

	g.Go(func() error {
		report.CompetitorRisk = competitorRisk(req.NumCompetitors, req.CompetitorRatings, a.cfg.Competitor)
		return nil
	})

	g.Go(func() error {
		report.EnvironmentRisk = environmentRisk(alerts, a.cfg.ClampScores)
		if alerts == nil {
			a.countNoData("environment")
		}
		return nil
	})

	g.Go(func() error {
		report.RegulatoryRisk = regulatoryRisk(a.fetchRegulatory(ctx, req.Location))
		if report.RegulatoryRisk.RiskScore == nil {
			a.countNoData("regulatory")
		}
		return nil
	})

	g.Go(func() error {
		stats := a.fetchCrime(ctx, req.Location)
		report.CrimeRisk = crimeRisk(stats, a.cfg.ClampScores)
		if stats == nil {
			a.countNoData("crime")
		}
		return nil
	})

	_ = g.Wait()

	report.Context = ReportContext{
		Location:        req.Location,
		Facts:           facts,
		Alerts:          alerts,
		AirQualityIndex: aqi,
	}

	if a.metrics != nil {
		a.metrics.ComputeDuration.Observe(time.Since(started).Seconds())
		a.metrics.ReportsComputed.Inc()
	}
	a.logger.Info("composite report computed",
		zap.String("zip", req.Location.ZipCode),
		zap.String("county", req.Location.County),
		zap.Duration("elapsed", time.Since(started)))

	return report, nil
}

// mergeAirQuality resolves the point AQI when coordinates are present and
// splices an air-quality pseudo-event into a fresh copy of the alert summary.
// The caller's summary is never mutated.
func (a *Aggregator) mergeAirQuality(ctx context.Context, req Request) (*AlertSummary, *float64) {
	alerts := req.Alerts

	if a.air == nil || req.Location.Latitude == nil || req.Location.Longitude == nil {
		return alerts, nil
	}

	aqi, err := a.air.FetchAQI(ctx, *req.Location.Latitude, *req.Location.Longitude)
	if err != nil {
		a.countCollaboratorError("air_quality")
		a.logger.Warn("air quality fetch failed", zap.Error(err))
		return alerts, nil
	}

	return alerts.WithEvent(eventAirQualityAlert, 1), &aqi
}

func (a *Aggregator) fetchFacts(ctx context.Context, zip string) *census.FactRecord {
	facts, err := a.facts.GetFacts(ctx, zip)
	if err != nil {
		a.countCollaboratorError("census")
		a.logger.Warn("fact fetch failed", zap.String("zip", zip), zap.Error(err))
		return nil
	}
	return facts
}

func (a *Aggregator) fetchCrime(ctx context.Context, loc Location) *models.CrimeStats {
	if a.crime == nil || loc.County == "" {
		return nil
	}
	stats, err := a.crime.GetCrimeStats(ctx, loc.County, loc.State)
	if err != nil {
		a.countCollaboratorError("crime")
		a.logger.Warn("crime lookup failed", zap.String("county", loc.County), zap.Error(err))
		return nil
	}
	return stats
}

func (a *Aggregator) fetchRegulatory(ctx context.Context, loc Location) *RegulatoryAssessment {
	if a.regulatory == nil {
		return nil
	}
	assessment, err := a.regulatory.ScoreRegulatoryDifficulty(ctx, loc.City, loc.County)
	if err != nil {
		a.countCollaboratorError("regulatory")
		a.logger.Warn("regulatory scoring failed", zap.String("city", loc.City), zap.Error(err))
		return nil
	}
	return &assessment
}

func (a *Aggregator) countNoData(dimension string) {
	if a.metrics != nil {
		a.metrics.DimensionNoData.WithLabelValues(dimension).Inc()
	}
}

func (a *Aggregator) countCollaboratorError(name string) {
	if a.metrics != nil {
		a.metrics.CollaboratorErrors.WithLabelValues(name).Inc()
	}
}
