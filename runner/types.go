package runner

import (
	"errors"
	"log/slog"
	"time"

	"github.com/katalvlaran/pathviz/astar"
)

// ErrStepBudget is returned by Run when the engine is still running after
// Config.MaxSteps steps.
var ErrStepBudget = errors.New("runner: step budget exhausted")

// DefaultStepDelay is the interval between steps used by DefaultConfig.
const DefaultStepDelay = 100 * time.Millisecond

// Config controls pacing and limits of a run.
type Config struct {
	StepDelay time.Duration        // fixed interval between steps; 0 = unpaced
	Delay     func() time.Duration // per-step interval provider; overrides StepDelay
	MaxSteps  int                  // 0 = unlimited
}

// DefaultConfig returns a Config paced at DefaultStepDelay with no step limit.
func DefaultConfig() Config {
	return Config{StepDelay: DefaultStepDelay}
}

// StepEvent is delivered to the Observer after every step.
type StepEvent struct {
	RunID   string
	Index   int          // 1-based step number
	Current int          // expanded cell, gridgraph.NoCell on exhaustion
	Preview []int        // start..Current along cameFrom
	Relaxed []int        // cells whose g-score improved
	Status  astar.Status // engine status after the step
}

// Outcome summarises a finished run.
type Outcome struct {
	RunID    string
	Status   astar.Status
	Path     []int
	Cost     float64
	Steps    int
	Expanded int
	Elapsed  time.Duration
}

// Found reports whether the run ended with a path.
func (o Outcome) Found() bool { return o.Status == astar.Found }

// Observer receives step notifications from a Runner. Calls happen on the
// goroutine that called Run, in step order; OnDone is called exactly once.
type Observer interface {
	OnStep(StepEvent)
	OnDone(Outcome)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Step func(StepEvent)
	Done func(Outcome)
}

// OnStep implements Observer.
func (f ObserverFuncs) OnStep(ev StepEvent) {
	if f.Step != nil {
		f.Step(ev)
	}
}

// OnDone implements Observer.
func (f ObserverFuncs) OnDone(o Outcome) {
	if f.Done != nil {
		f.Done(o)
	}
}

// multi fans notifications out to several observers in order.
type multi []Observer

func (m multi) OnStep(ev StepEvent) {
	for _, o := range m {
		o.OnStep(ev)
	}
}

func (m multi) OnDone(out Outcome) {
	for _, o := range m {
		o.OnDone(out)
	}
}

// Multi returns an Observer that forwards to every non-nil observer in obs.
func Multi(obs ...Observer) Observer {
	m := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}

	return m
}

// Option represents a functional option for configuring a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records run metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}
