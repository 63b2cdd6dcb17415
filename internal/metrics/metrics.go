// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics for the analysis service.
type Metrics struct {
	SnapshotsTotal       prometheus.Counter
	SnapshotsInvalid     prometheus.Counter
	SnapshotsDuplicate   prometheus.Counter
	VerdictsTotal        *prometheus.CounterVec
	IncidentsTotal       prometheus.Counter
	ExplainFallbacks     prometheus.Counter
	SlotRejections       prometheus.Counter
	PolicyCorrections    prometheus.Counter
	OutputWriteErrors    prometheus.Counter
}

// New creates the Metrics instance with all counters registered.
func New() *Metrics {
	return &Metrics{
		SnapshotsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_snapshots_total",
			Help: "Total number of app snapshots consumed",
		}),
		SnapshotsInvalid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_snapshots_invalid_total",
			Help: "Total number of snapshots that failed to decode",
		}),
		SnapshotsDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_snapshots_duplicate_total",
			Help: "Total number of snapshots dropped as recent duplicates",
		}),
		VerdictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_verdicts_total",
			Help: "Total number of verdicts emitted, by risk level",
		}, []string{"risk"}),
		IncidentsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_incidents_total",
			Help: "Total number of incidents resolved from events",
		}),
		ExplainFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_explain_fallbacks_total",
			Help: "Total number of answers rendered by template fallback",
		}),
		SlotRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_slot_rejections_total",
			Help: "Total number of generated outputs rejected by slot validation",
		}),
		PolicyCorrections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_policy_corrections_total",
			Help: "Total number of safe-language corrections applied to answers",
		}),
		OutputWriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_output_write_errors_total",
			Help: "Total number of output write failures",
		}),
	}
}
