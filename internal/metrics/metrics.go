// Package metrics exposes prometheus instrumentation for the analytics
// pipeline. Collectors are registered on a caller-supplied registerer;
// exposition is the host's concern.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcome label values.
const (
	StatusOK              = "ok"
	StatusInvalidRequest  = "invalid_request"
	StatusUnknownCategory = "unknown_category"
	StatusLoadFailed      = "load_failed"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	PipelineRuns  *prometheus.CounterVec
	RecordsLoaded *prometheus.CounterVec
	LoadDuration  *prometheus.HistogramVec
}

// New creates pipeline metrics registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadhaar",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline invocations by category, view and outcome.",
		}, []string{"category", "view", "status"}),
		RecordsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadhaar",
			Subsystem: "pipeline",
			Name:      "records_loaded_total",
			Help:      "Canonical records produced by dataset loads.",
		}, []string{"category"}),
		LoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aadhaar",
			Subsystem: "pipeline",
			Name:      "load_duration_seconds",
			Help:      "Wall time spent reading and normalizing a dataset.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
	}
}

// NewNop creates metrics on a private registry, for tests and for callers
// that do not scrape.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveRun records one pipeline invocation outcome.
func (m *Metrics) ObserveRun(category, view, status string) {
	m.PipelineRuns.WithLabelValues(category, view, status).Inc()
}

// ObserveLoad records a completed dataset load.
func (m *Metrics) ObserveLoad(category string, records int, elapsed time.Duration) {
	m.RecordsLoaded.WithLabelValues(category).Add(float64(records))
	m.LoadDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}
