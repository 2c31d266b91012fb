package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by a Runner. A nil *Metrics
// records nothing.
type Metrics struct {
	// steps counts engine steps across all runs.
	steps prometheus.Counter

	// runs counts finished runs.
	// Labels: outcome (found, exhausted, cancelled)
	runs *prometheus.CounterVec

	// duration measures wall time per run, pacing included.
	duration prometheus.Histogram

	// pathCost tracks the cost of found paths.
	pathCost prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which is what tests usually want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		steps: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pathviz",
			Name:      "steps_total",
			Help:      "Total A* steps executed",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathviz",
			Name:      "runs_total",
			Help:      "Finished search runs by outcome",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathviz",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a search run in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		pathCost: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathviz",
			Name:      "path_cost",
			Help:      "Cost of found paths",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (m *Metrics) recordStep() {
	if m == nil {
		return
	}
	m.steps.Inc()
}

func (m *Metrics) recordRun(o Outcome) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(o.Status.String()).Inc()
	m.duration.Observe(o.Elapsed.Seconds())
	if o.Found() {
		m.pathCost.Observe(o.Cost)
	}
}
