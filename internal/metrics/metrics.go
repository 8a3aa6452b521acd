// Package metrics exports solver progress to Prometheus.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/FlatBartender/bis-solver/internal/progress"
)

const (
	namespace = "bis"
	subsystem = "solver"
)

// Metrics holds the collectors of one registry. It is safe for concurrent use.
type Metrics struct {
	evaluated *prometheus.CounterVec
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	bestDPS   prometheus.Gauge
}

// New registers the solver collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		evaluated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "candidates_evaluated_total",
			Help:      "Gearsets scored by the evaluator",
		}, []string{"stage"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Finished solver runs",
		}, []string{"solver", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a solver run",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		}, []string{"solver"}),
		bestDPS: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "best_dps",
			Help:      "DPS of the best gearset of the last successful run",
		}),
	}
}

// Sink returns a progress sink counting evaluated candidates under the last
// status message received.
func (m *Metrics) Sink() progress.Sink {
	s := &sink{m: m}
	s.stage.Store(stageLabel(""))
	return s
}

// ObserveRun records the outcome of one run. best is ignored when err is set.
func (m *Metrics) ObserveRun(solver string, elapsed time.Duration, best float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.runs.WithLabelValues(solver, outcome).Inc()
	m.duration.WithLabelValues(solver).Observe(elapsed.Seconds())
	if err == nil {
		m.bestDPS.Set(best)
	}
}

type sink struct {
	m     *Metrics
	stage atomic.Pointer[string]
}

func stageLabel(msg string) *string {
	if msg == "" {
		msg = "idle"
	}
	return &msg
}

func (s *sink) Message(msg string) {
	s.stage.Store(stageLabel(msg))
}

func (s *sink) Add(n uint64) {
	s.m.evaluated.WithLabelValues(*s.stage.Load()).Add(float64(n))
}

func (s *sink) Reset() {
	s.stage.Store(stageLabel(""))
}
