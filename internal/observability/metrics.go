package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the poller.
type Metrics struct {
	PollCycles            prometheus.Counter
	ObservationsPublished prometheus.Counter
	PublishErrors         prometheus.Counter
	PollerRunning         prometheus.Gauge

	FetchErrors   *prometheus.CounterVec   // labels: kind={weather,hydrological}
	FetchDuration *prometheus.HistogramVec // labels: kind={weather,hydrological}
	ActiveAlerts  *prometheus.GaugeVec     // labels: kind={weather,hydrological}

	CycleDuration prometheus.Histogram
}

// NewMetrics creates and registers all poller metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PollCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "imgw_etl",
			Name:      "poll_cycles_total",
			Help:      "Total completed poll cycles.",
		}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "imgw_etl",
			Name:      "observations_published_total",
			Help:      "Total normalized observations written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "imgw_etl",
			Name:      "publish_errors_total",
			Help:      "Total failed sink publishes.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "imgw_etl",
			Name:      "poller_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imgw_etl",
			Name:      "fetch_errors_total",
			Help:      "Upstream fetch failures by observation kind.",
		}, []string{"kind"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "imgw_etl",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream fetch duration by observation kind.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"kind"}),
		ActiveAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "imgw_etl",
			Name:      "active_alerts",
			Help:      "Stations with an active warning in the last cycle, by kind.",
		}, []string{"kind"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "imgw_etl",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-publish cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.PollCycles,
		m.ObservationsPublished,
		m.PublishErrors,
		m.PollerRunning,
		m.FetchErrors,
		m.FetchDuration,
		m.ActiveAlerts,
		m.CycleDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PollCycles:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "imgw_etl", Name: "poll_cycles_total"}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "imgw_etl", Name: "observations_published_total"}),
		PublishErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "imgw_etl", Name: "publish_errors_total"}),
		PollerRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "imgw_etl", Name: "poller_running"}),
		FetchErrors:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "imgw_etl", Name: "fetch_errors_total"}, []string{"kind"}),
		FetchDuration:         prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "imgw_etl", Name: "fetch_duration_seconds"}, []string{"kind"}),
		ActiveAlerts:          prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "imgw_etl", Name: "active_alerts"}, []string{"kind"}),
		CycleDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "imgw_etl", Name: "cycle_duration_seconds"}),
	}
}
