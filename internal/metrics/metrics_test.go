package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkCountsPerStage(t *testing.T) {
	m := New(prometheus.NewRegistry())
	s := m.Sink()

	s.Add(3)
	s.Message("Ranking gear...")
	s.Add(10)
	s.Add(5)
	s.Message("Ranking food/melds...")
	s.Add(7)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.evaluated.WithLabelValues("idle")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.evaluated.WithLabelValues("Ranking gear...")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.evaluated.WithLabelValues("Ranking food/melds...")))

	s.Reset()
	s.Add(1)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.evaluated.WithLabelValues("idle")))
}

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun("split", 2*time.Second, 14321.5, nil)
	m.ObserveRun("split", time.Second, 0, errors.New("canceled"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("split", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("split", "error")))
	assert.Equal(t, 14321.5, testutil.ToFloat64(m.bestDPS))

	n, err := testutil.GatherAndCount(reg, "bis_solver_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
