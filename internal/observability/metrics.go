package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bikeshare_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	RecordsLoaded  prometheus.Gauge
	DatasetReloads *prometheus.CounterVec // labels: outcome={success,error}

	// View computation metrics.
	ViewComputations    prometheus.Counter
	EmptySelections     prometheus.Counter
	ViewComputeDuration prometheus.Histogram
	ChartExports        *prometheus.CounterVec // labels: format={svg,xlsx}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsLoaded,
		m.DatasetReloads,
		m.ViewComputations,
		m.EmptySelections,
		m.ViewComputeDuration,
		m.ChartExports,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Number of records in the active dataset.",
		}),
		DatasetReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "Dataset reload attempts by outcome.",
		}, []string{"outcome"}),
		ViewComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_computations_total",
			Help:      "Total derived view recomputations.",
		}),
		EmptySelections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_selections_total",
			Help:      "Date range selections that matched no records.",
		}),
		ViewComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_compute_duration_seconds",
			Help:      "Duration of filtering and aggregating one date range.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ChartExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_exports_total",
			Help:      "Static chart and data exports by format.",
		}, []string{"format"}),
	}
}
