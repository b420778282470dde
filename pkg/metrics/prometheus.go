package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	recordsIngested *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
	decisionScore   *prometheus.GaugeVec
	confidenceScore *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recordsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equitypulse_records_ingested_total",
				Help: "Total number of news records ingested per source",
			},
			[]string{"source", "ticker"},
		),
		sourceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equitypulse_source_errors_total",
				Help: "Total number of source fetch errors",
			},
			[]string{"source"},
		),
		decisionScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "equitypulse_decision_score",
				Help: "Last computed decision score for a ticker",
			},
			[]string{"ticker"},
		),
		confidenceScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "equitypulse_confidence_score",
				Help: "Last computed evidence confidence score for a ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "equitypulse_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordIngested records news records fetched from a source.
func (r *Recorder) RecordIngested(source, ticker string, count int) {
	r.recordsIngested.WithLabelValues(source, ticker).Add(float64(count))
}

// RecordSourceError records a source fetch failure.
func (r *Recorder) RecordSourceError(source string) {
	r.sourceErrors.WithLabelValues(source).Inc()
}

// RecordDecisionScore records the last decision score for a ticker.
func (r *Recorder) RecordDecisionScore(ticker string, score float64) {
	r.decisionScore.WithLabelValues(ticker).Set(score)
}

// RecordConfidenceScore records the last confidence score for a ticker.
func (r *Recorder) RecordConfidenceScore(ticker string, score float64) {
	r.confidenceScore.WithLabelValues(ticker).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
