// Package hostmetrics wires prometheus/client_golang for the host
// process: a turn counter, a corruption-latch gauge, and a dispatch
// latency histogram. None of this lives in internal/engine — the core
// stays silent per its Non-goals; these are the host's own observability,
// recorded by internal/hostserver around each HandleMessage call.
package hostmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the gauges/counters/histograms this host records. Build
// one with New (the process default registerer) or NewWithRegisterer (for
// tests, so each test gets an isolated registry).
type Metrics struct {
	turns        *prometheus.CounterVec
	corrupted    *prometheus.GaugeVec
	dispatchTime *prometheus.HistogramVec
}

// New registers Metrics against prometheus.DefaultRegisterer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers Metrics against reg, letting tests use an
// isolated prometheus.NewRegistry() instead of the package-global default.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ifengine",
			Name:      "turns_total",
			Help:      "Commands dispatched, labeled by verb and outcome.",
		}, []string{"verb", "success"}),
		corrupted: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ifengine",
			Name:      "state_corrupted",
			Help:      "1 if a session's protocol handler has latched state_corrupted, else 0.",
		}, []string{"session_id"}),
		dispatchTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ifengine",
			Name:      "dispatch_duration_seconds",
			Help:      "HandleMessage latency, labeled by message type.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"message_type"}),
	}
	reg.MustRegister(m.turns, m.corrupted, m.dispatchTime)
	return m
}

// RecordTurn records one dispatched command's verb and success outcome.
func (m *Metrics) RecordTurn(verb string, success bool) {
	m.turns.WithLabelValues(verb, successLabel(success)).Inc()
}

// SetCorrupted reflects a session's protocol.Handler.Corrupted() into the
// gauge so an operator can alert on any session latching mid-flight.
func (m *Metrics) SetCorrupted(sessionID string, corrupted bool) {
	value := 0.0
	if corrupted {
		value = 1.0
	}
	m.corrupted.WithLabelValues(sessionID).Set(value)
}

// ObserveDispatch records how long one HandleMessage call took.
func (m *Metrics) ObserveDispatch(messageType string, seconds float64) {
	m.dispatchTime.WithLabelValues(messageType).Observe(seconds)
}

func successLabel(success bool) string {
	if success {
		return "true"
	}
	return "false"
}
