package metrics

import "github.com/prometheus/client_golang/prometheus"

// QuizMetrics exposes counters/histograms for the quiz funnel.
type QuizMetrics struct {
	catalogLoads    *prometheus.CounterVec
	sessionsStarted prometheus.Counter
	comparisons     *prometheus.CounterVec
	leadSubmissions *prometheus.CounterVec
	leadLatency     prometheus.Histogram
}

func NewQuizMetrics(reg prometheus.Registerer) *QuizMetrics {
	m := &QuizMetrics{
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadmap",
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog loads by resulting data status",
		}, []string{"status"}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadmap",
			Subsystem: "quiz",
			Name:      "sessions_started_total",
			Help:      "Quiz sessions started",
		}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadmap",
			Subsystem: "quiz",
			Name:      "comparisons_total",
			Help:      "Price comparisons by outcome",
		}, []string{"outcome"}),
		leadSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadmap",
			Subsystem: "lead",
			Name:      "submissions_total",
			Help:      "Lead submissions by status",
		}, []string{"status"}),
		leadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadmap",
			Subsystem: "lead",
			Name:      "delivery_seconds",
			Help:      "Latency of lead delivery to the messaging channel",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.catalogLoads, m.sessionsStarted, m.comparisons, m.leadSubmissions, m.leadLatency)
	return m
}

func (m *QuizMetrics) ObserveCatalogLoad(status string) {
	if m == nil {
		return
	}
	m.catalogLoads.WithLabelValues(status).Inc()
}

func (m *QuizMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *QuizMetrics) ObserveComparison(outcome string) {
	if m == nil {
		return
	}
	m.comparisons.WithLabelValues(outcome).Inc()
}

func (m *QuizMetrics) ObserveLeadSubmission(status string, seconds float64) {
	if m == nil {
		return
	}
	m.leadSubmissions.WithLabelValues(status).Inc()
	if seconds > 0 {
		m.leadLatency.Observe(seconds)
	}
}
