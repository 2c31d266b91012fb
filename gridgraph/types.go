// Package gridgraph defines core types, options, and sentinel errors
// for the grid model.
package gridgraph

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pathviz/adjacency"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates a grid with no cells was requested.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one cell")
	// ErrNonSquare indicates layout rows that do not form a square.
	ErrNonSquare = errors.New("gridgraph: layout must be square")
	// ErrBadGlyph indicates an unknown character in a text layout.
	ErrBadGlyph = errors.New("gridgraph: unknown layout glyph")
	// ErrDuplicateEndpoint indicates a layout with more than one start or target.
	ErrDuplicateEndpoint = errors.New("gridgraph: layout has more than one start or target")
	// ErrOutOfRange indicates an id or coordinate outside the grid.
	ErrOutOfRange = errors.New("gridgraph: cell out of range")
	// ErrBadOverlay indicates an invalid Mark request.
	ErrBadOverlay = errors.New("gridgraph: invalid overlay")
)

// NoCell is the id reported for an unset start or target.
const NoCell = -1

// State is the mutable state of a cell. Only Wall affects traversal.
type State int

const (
	// Open is a traversable cell with no overlay.
	Open State = iota
	// Wall is never traversable and never a start or target.
	Wall
	// Start marks the unique start cell.
	Start
	// Target marks the unique target cell.
	Target
	// Visited marks a cell expanded by a search (overlay).
	Visited
	// OnPath marks a cell on the current or final path (overlay).
	OnPath
)

// String returns a lower-case name for the state.
func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case Target:
		return "target"
	case Visited:
		return "visited"
	case OnPath:
		return "path"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Glyph returns the layout character for the state.
func (s State) Glyph() rune {
	switch s {
	case Wall:
		return '#'
	case Start:
		return 'S'
	case Target:
		return 'T'
	case Visited:
		return 'o'
	case OnPath:
		return '*'
	default:
		return '.'
	}
}

// stateForGlyph is the inverse of State.Glyph.
func stateForGlyph(r rune) (State, bool) {
	switch r {
	case '.':
		return Open, true
	case '#':
		return Wall, true
	case 'S':
		return Start, true
	case 'T':
		return Target, true
	case 'o':
		return Visited, true
	case '*':
		return OnPath, true
	default:
		return Open, false
	}
}

// overlay reports whether s is a presentation-only state that may be replaced
// freely by Mark and ResetOverlays.
func (s State) overlay() bool {
	return s == Open || s == Visited || s == OnPath
}

// Cell is a single grid cell. ID, X and Y never change after construction.
type Cell struct {
	ID    int   // row-major index: Y*rowCount + X
	X, Y  int   // coordinates within the grid
	State State // current state
}

// Walkable reports whether the cell can be traversed.
func (c Cell) Walkable() bool { return c.State != Wall }

// GridOptions contains tunable parameters for a grid.
type GridOptions struct {
	// Topology chooses 4- or 8-directional adjacency.
	Topology adjacency.Topology
}

// DefaultGridOptions returns GridOptions with Topology=Adjacent4.
func DefaultGridOptions() GridOptions {
	return GridOptions{Topology: adjacency.Adjacent4}
}

// Option configures a Grid at construction.
type Option func(*GridOptions)

// WithTopology selects the adjacency topology. Unknown values are ignored.
func WithTopology(t adjacency.Topology) Option {
	return func(o *GridOptions) {
		if t.Valid() {
			o.Topology = t
		}
	}
}

// Grid is a square grid of cells. The zero value is not usable; build one
// with New or Parse.
type Grid struct {
	rowCount int
	topology adjacency.Topology
	cells    []Cell
	start    int
	target   int
}
