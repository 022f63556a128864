package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"placemaker/internal/hmis/validation"
)

// Metrics provides observability for record intake.
type Metrics struct {
	// Validation outcomes by record type and outcome (accepted, rejected)
	RecordsValidated *prometheus.CounterVec

	// Violations by kind
	Violations *prometheus.CounterVec

	// Lifecycle events by action
	Lifecycle *prometheus.CounterVec

	// Store call latency by operation
	StoreLatency *prometheus.HistogramVec
}

// New registers the intake metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsValidated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placemaker_records_validated_total",
			Help: "Records validated by record type and outcome",
		}, []string{"record", "outcome"}),

		Violations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placemaker_violations_total",
			Help: "Field violations found by kind",
		}, []string{"kind"}),

		Lifecycle: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placemaker_lifecycle_events_total",
			Help: "Record lifecycle events by action",
		}, []string{"action"}),

		StoreLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placemaker_store_duration_seconds",
			Help:    "Duration of store operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"op"}),
	}
}

// ObserveValidation records one validation result.
func (m *Metrics) ObserveValidation(record string, vs validation.Violations) {
	if m == nil {
		return
	}
	outcome := "accepted"
	if len(vs) > 0 {
		outcome = "rejected"
	}
	m.RecordsValidated.WithLabelValues(record, outcome).Inc()
	for kind, n := range vs.CountByKind() {
		m.Violations.WithLabelValues(string(kind)).Add(float64(n))
	}
}

func (m *Metrics) IncrementLifecycle(action string) {
	if m != nil {
		m.Lifecycle.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) ObserveStoreLatency(op string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(op).Observe(d.Seconds())
	}
}
