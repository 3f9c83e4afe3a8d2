package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the risk scoring service.
type Metrics struct {
	FactCacheLookups   *prometheus.CounterVec // labels: result={hit,miss,stale}
	CollaboratorErrors *prometheus.CounterVec // labels: collaborator={census,weather,ratings,air_quality,crime,regulatory}
	DimensionNoData    *prometheus.CounterVec // labels: dimension={demographic,competitor,environment,regulatory,crime}
	ComputeDuration    prometheus.Histogram
	ReportsComputed    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FactCacheLookups,
		m.CollaboratorErrors,
		m.DimensionNoData,
		m.ComputeDuration,
		m.ReportsComputed,
	)
	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FactCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realrisk",
			Name:      "fact_cache_lookups_total",
			Help:      "Census fact cache lookups by result.",
		}, []string{"result"}),
		CollaboratorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realrisk",
			Name:      "collaborator_errors_total",
			Help:      "Upstream collaborator failures by collaborator name.",
		}, []string{"collaborator"}),
		DimensionNoData: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realrisk",
			Name:      "dimension_no_data_total",
			Help:      "Sub-scores returned with a no-data sentinel, by dimension.",
		}, []string{"dimension"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "realrisk",
			Name:      "compute_duration_seconds",
			Help:      "Duration of a full composite risk computation.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ReportsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realrisk",
			Name:      "reports_computed_total",
			Help:      "Total composite risk reports assembled.",
		}),
	}
}
