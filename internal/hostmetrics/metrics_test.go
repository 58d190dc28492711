package hostmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// Grounded on the teacher's internal/observability/context_metrics_test.go:
// an isolated prometheus.NewRegistry() per test plus testutil.ToFloat64 to
// read a metric's current value back out.

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewWithRegisterer(reg)
}

func TestRecordTurn(t *testing.T) {
	m := newTestMetrics(t)
	m.RecordTurn("take", true)
	m.RecordTurn("take", true)
	m.RecordTurn("open", false)

	require.Equal(t, float64(2), testutil.ToFloat64(m.turns.WithLabelValues("take", "true")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.turns.WithLabelValues("open", "false")))
}

func TestSetCorrupted(t *testing.T) {
	m := newTestMetrics(t)
	m.SetCorrupted("session-1", false)
	require.Equal(t, float64(0), testutil.ToFloat64(m.corrupted.WithLabelValues("session-1")))

	m.SetCorrupted("session-1", true)
	require.Equal(t, float64(1), testutil.ToFloat64(m.corrupted.WithLabelValues("session-1")))
}

func TestObserveDispatch(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveDispatch("command", 0.01)
	m.ObserveDispatch("query", 0.02)

	require.Equal(t, 2, testutil.CollectAndCount(m.dispatchTime))
}
