package astar

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors returned by the engine.
var (
	// ErrNilGrid indicates that a nil grid was passed to New.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrInvalidEndpoints indicates an unset, out-of-range, wall or identical
	// start/target pair.
	ErrInvalidEndpoints = errors.New("astar: invalid endpoints")

	// ErrInvalidState indicates an operation invoked outside its valid state.
	ErrInvalidState = errors.New("astar: invalid engine state")

	// ErrNoPath is returned by Search when the frontier is exhausted.
	ErrNoPath = errors.New("astar: no path between start and target")
)

// Status is the engine lifecycle state.
type Status int

const (
	// Ready means constructed, no step taken yet.
	Ready Status = iota
	// Running means at least one step taken and not finished.
	Running
	// Found is terminal: a path is available.
	Found
	// Exhausted is terminal: no path exists.
	Exhausted
	// Cancelled is terminal: the run was aborted.
	Cancelled
)

// String returns a lower-case name for the status.
func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether s ends a run.
func (s Status) Terminal() bool {
	return s == Found || s == Exhausted || s == Cancelled
}

// StepResult describes what one call to Step did.
type StepResult struct {
	Step    int     // 1-based index of this step
	Current int     // cell expanded (or reached, when Found); gridgraph.NoCell on exhaustion
	Preview []int   // start..Current following cameFrom, for live path display
	Relaxed []int   // neighbors whose g-score improved during this step
	Path    []int   // start..target when Status == Found, nil otherwise
	Cost    float64 // g(target) when Status == Found
	Status  Status  // engine status after the step
}

// Result summarises a finished (or aborted) run.
type Result struct {
	Path     []int   // start..target when Found
	Cost     float64 // total path cost when Found
	Steps    int     // number of Step calls
	Expanded int     // size of the closed set when the run ended
	Found    bool    // Status == Found
	Status   Status
}

// Options configures an Engine.
type Options struct {
	Logger *slog.Logger // Debug per step, Info on terminal transitions
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// DefaultOptions returns Options with slog.Default() as logger.
func DefaultOptions() Options {
	return Options{Logger: slog.Default()}
}

// WithLogger sets the engine logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
