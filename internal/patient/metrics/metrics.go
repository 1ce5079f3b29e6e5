package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the patient record core.
type Metrics struct {
	PatientsCreated    prometheus.Counter
	EntriesAppended    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	OperationLatency   *prometheus.HistogramVec
}

// New creates and registers all patient metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PatientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinica_patients_created_total",
			Help: "Total number of patient records created",
		}),
		EntriesAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clinica_entries_appended_total",
			Help: "Total number of clinical entries appended, labeled by entry kind",
		}, []string{"kind"}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clinica_validation_failures_total",
			Help: "Total number of rejected creation requests, labeled by input kind",
		}, []string{"input"}),
		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinica_store_operation_latency_seconds",
			Help:    "Latency of patient store operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}
