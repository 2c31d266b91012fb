package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the solver.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed.
	ErrNilGrid = errors.New("dijkstra: grid is nil")

	// ErrSourceOutOfRange indicates a source id outside the grid (including an
	// unset source).
	ErrSourceOutOfRange = errors.New("dijkstra: source out of range")

	// ErrSourceIsWall indicates that the source cell is a wall.
	ErrSourceIsWall = errors.New("dijkstra: source is a wall")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrNoPath indicates that Path found no predecessor chain to the target.
	ErrNoPath = errors.New("dijkstra: no path to target")
)

// Options configures the solver.
//
// Source      – starting cell id; -1 (the default) means the grid's start cell.
// ReturnPath  – if true, return the predecessor map; otherwise prev is nil.
// MaxDistance – cells farther than this are not finalized. Default +Inf.
type Options struct {
	Source      int
	ReturnPath  bool
	MaxDistance float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting cell id.
func Source(id int) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// WithReturnPath enables the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance caps exploration at max. Negative values panic, since they
// are a programming error rather than bad input.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options with the grid's start as source, no
// predecessor map and no distance cap.
func DefaultOptions() Options {
	return Options{
		Source:      -1,
		ReturnPath:  false,
		MaxDistance: math.Inf(1),
	}
}
