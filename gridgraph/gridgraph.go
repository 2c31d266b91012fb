package gridgraph

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/pathviz/adjacency"
)

// New constructs an all-Open grid with rowCount cells per side.
// Start and target are unset.
// Returns ErrEmptyGrid if rowCount <= 0.
// Complexity: O(rowCount²) time and memory.
func New(rowCount int, opts ...Option) (*Grid, error) {
	if rowCount <= 0 {
		return nil, ErrEmptyGrid
	}
	cfg := DefaultGridOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	total := rowCount * rowCount
	cells := make([]Cell, total)
	for i := range cells {
		cells[i] = Cell{ID: i, X: i % rowCount, Y: i / rowCount, State: Open}
	}

	return &Grid{
		rowCount: rowCount,
		topology: cfg.Topology,
		cells:    cells,
		start:    NoCell,
		target:   NoCell,
	}, nil
}

// Parse builds a grid from a square text layout, one string per row:
//
//	. open   # wall   S start   T target   o visited   * path
//
// Returns ErrEmptyGrid, ErrNonSquare, ErrBadGlyph or ErrDuplicateEndpoint.
func Parse(rows []string, opts ...Option) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	n := len(rows)
	for y, row := range rows {
		if got := utf8.RuneCountInString(row); got != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonSquare, y, got, n)
		}
	}

	g, err := New(n, opts...)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		x := 0
		for _, r := range row {
			s, ok := stateForGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrBadGlyph, r, x, y)
			}
			id := g.Index(x, y)
			switch s {
			case Start:
				if g.start != NoCell {
					return nil, fmt.Errorf("%w: second start at (%d,%d)", ErrDuplicateEndpoint, x, y)
				}
				g.start = id
			case Target:
				if g.target != NoCell {
					return nil, fmt.Errorf("%w: second target at (%d,%d)", ErrDuplicateEndpoint, x, y)
				}
				g.target = id
			}
			g.cells[id].State = s
			x++
		}
	}

	return g, nil
}

// RowCount returns the number of cells per row (and per column).
func (g *Grid) RowCount() int { return g.rowCount }

// Len returns the total number of cells, rowCount².
func (g *Grid) Len() int { return len(g.cells) }

// Topology returns the adjacency topology used by Neighbors.
func (g *Grid) Topology() adjacency.Topology { return g.topology }

// SetTopology switches the adjacency topology.
func (g *Grid) SetTopology(t adjacency.Topology) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", adjacency.ErrUnknownTopology, int(t))
	}
	g.topology = t

	return nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.rowCount && y >= 0 && y < g.rowCount
}

// Contains reports whether id addresses a cell of the grid.
func (g *Grid) Contains(id int) bool {
	return id >= 0 && id < len(g.cells)
}

// Index maps (x,y) to a row-major id: y*rowCount + x.
// The result is meaningful only when InBounds(x, y).
// Complexity: O(1).
func (g *Grid) Index(x, y int) int {
	return y*g.rowCount + x
}

// Coordinate converts a row-major id back to (x,y).
// Complexity: O(1).
func (g *Grid) Coordinate(id int) (x, y int) {
	return id % g.rowCount, id / g.rowCount
}

// CellAt returns the cell with the given id, or ErrOutOfRange.
func (g *Grid) CellAt(id int) (Cell, error) {
	if !g.Contains(id) {
		return Cell{}, fmt.Errorf("%w: id %d not in [0,%d)", ErrOutOfRange, id, len(g.cells))
	}

	return g.cells[id], nil
}

// CellAtXY returns the cell at (x,y), or ErrOutOfRange.
func (g *Grid) CellAtXY(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, x, y, g.rowCount, g.rowCount)
	}

	return g.cells[g.Index(x, y)], nil
}

// Walkable reports whether id is in range and not a wall.
func (g *Grid) Walkable(id int) bool {
	return g.Contains(id) && g.cells[id].State != Wall
}

// Neighbors returns the non-wall neighbors of id under the grid topology,
// in the canonical adjacency order. Out-of-range ids yield nil.
// Complexity: O(d).
func (g *Grid) Neighbors(id int) []int {
	ids := adjacency.Neighbors(g.topology, id, len(g.cells), g.rowCount)
	filtered := ids[:0]
	for _, nb := range ids {
		if g.cells[nb].State != Wall {
			filtered = append(filtered, nb)
		}
	}

	return filtered
}

// StartID returns the start cell id and whether one is set.
func (g *Grid) StartID() (int, bool) {
	return g.start, g.start != NoCell
}

// TargetID returns the target cell id and whether one is set.
func (g *Grid) TargetID() (int, bool) {
	return g.target, g.target != NoCell
}

// Cells returns a copy of all cells in id order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)

	return out
}

// Clone returns a deep copy of the grid. Engines that must not observe later
// edits can be handed a clone.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = g.Cells()

	return &c
}

// String renders the grid in the Parse glyph set, rows separated by '\n'.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(len(g.cells) + g.rowCount)
	for i, c := range g.cells {
		if i > 0 && i%g.rowCount == 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(c.State.Glyph())
	}

	return b.String()
}
