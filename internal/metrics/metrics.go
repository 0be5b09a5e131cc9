// Package metrics counts processed events and exports them in the Prometheus
// text format, for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "txengine"

const (
	OutcomeApplied   = "applied"
	OutcomeRejected  = "rejected"
	OutcomeMalformed = "malformed"
)

// Recorder is safe to use as a nil pointer, in which case it records nothing.
type Recorder struct {
	registry *prometheus.Registry

	events         *prometheus.CounterVec
	accounts       prometheus.Gauge
	lockedAccounts prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Input events by kind and outcome.",
		}, []string{"kind", "outcome"}),
		accounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts",
			Help:      "Accounts in the final snapshot.",
		}),
		lockedAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locked_accounts",
			Help:      "Locked accounts in the final snapshot.",
		}),
	}

	r.registry.MustRegister(r.events, r.accounts, r.lockedAccounts)
	return r
}

// ObserveEvent counts one event. kind is "unknown" for rows that never parsed.
func (r *Recorder) ObserveEvent(kind, outcome string) {
	if r == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	r.events.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) ObserveSnapshot(accounts, locked int) {
	if r == nil {
		return
	}
	r.accounts.Set(float64(accounts))
	r.lockedAccounts.Set(float64(locked))
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile atomically writes every metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
