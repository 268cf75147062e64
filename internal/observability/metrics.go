package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// oceanographic assessment engine.
type Metrics struct {
	ProviderRequests      *prometheus.CounterVec // labels: kind, outcome={success,error,empty}
	ObservationsGenerated *prometheus.CounterVec // labels: kind

	SummariesTotal    prometheus.Counter
	SummaryFailures   *prometheus.CounterVec // labels: reason={fetch,no_data}
	SummarizeDuration prometheus.Histogram
	FallbacksServed   prometheus.Counter

	ThreatScore prometheus.Gauge

	// Monitor loop and publisher metrics.
	MonitorRunning       prometheus.Gauge
	MonitorCycles        *prometheus.CounterVec // labels: outcome={success,error}
	AssessmentsPublished prometheus.Counter
	PublishErrors        prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "provider_requests_total",
			Help:      "Provider fetches by parameter kind and outcome.",
		}, []string{"kind", "outcome"}),
		ObservationsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "observations_generated_total",
			Help:      "Observations produced by the provider, per parameter kind.",
		}, []string{"kind"}),
		SummariesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "summaries_total",
			Help:      "Completed oceanographic summaries.",
		}),
		SummaryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "summary_failures_total",
			Help:      "Aggregation cycles that produced no summary, by reason.",
		}, []string{"reason"}),
		SummarizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ocean_engine",
			Name:      "summarize_duration_seconds",
			Help:      "Duration of a complete five-parameter aggregation cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		FallbacksServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "fallbacks_served_total",
			Help:      "Degraded responses served from the fallback generator.",
		}),
		ThreatScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ocean_engine",
			Name:      "threat_score",
			Help:      "Most recent threat assessment score for the monitored region.",
		}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ocean_engine",
			Name:      "monitor_running",
			Help:      "1 when the assessment monitor loop is active, 0 when shut down.",
		}),
		MonitorCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "monitor_cycles_total",
			Help:      "Monitor assessment cycles by outcome.",
		}, []string{"outcome"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "assessments_published_total",
			Help:      "Threat assessments published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_engine",
			Name:      "publish_errors_total",
			Help:      "Failed publishes to the sink topic.",
		}),
	}

	prometheus.MustRegister(
		m.ProviderRequests,
		m.ObservationsGenerated,
		m.SummariesTotal,
		m.SummaryFailures,
		m.SummarizeDuration,
		m.FallbacksServed,
		m.ThreatScore,
		m.MonitorRunning,
		m.MonitorCycles,
		m.AssessmentsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ProviderRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "provider_requests_total"}, []string{"kind", "outcome"}),
		ObservationsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "observations_generated_total"}, []string{"kind"}),
		SummariesTotal:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "summaries_total"}),
		SummaryFailures:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "summary_failures_total"}, []string{"reason"}),
		SummarizeDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ocean_engine", Name: "summarize_duration_seconds"}),
		FallbacksServed:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "fallbacks_served_total"}),
		ThreatScore:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ocean_engine", Name: "threat_score"}),
		MonitorRunning:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ocean_engine", Name: "monitor_running"}),
		MonitorCycles:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "monitor_cycles_total"}, []string{"outcome"}),
		AssessmentsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "assessments_published_total"}),
		PublishErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ocean_engine", Name: "publish_errors_total"}),
	}
}
