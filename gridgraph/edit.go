package gridgraph

import "fmt"

// The operations below are the UI-facing mutators. Each keeps the invariant
// that at most one cell is Start and at most one is Target.

func (g *Grid) checkID(id int) error {
	if !g.Contains(id) {
		return fmt.Errorf("%w: id %d not in [0,%d)", ErrOutOfRange, id, len(g.cells))
	}

	return nil
}

// SetStart makes id the start cell. The previous start reverts to Open.
// If id currently holds the target, the target becomes unset; a wall at id is
// replaced.
func (g *Grid) SetStart(id int) error {
	if err := g.checkID(id); err != nil {
		return err
	}
	if g.target == id {
		g.target = NoCell
	}
	if g.start != NoCell && g.start != id {
		g.cells[g.start].State = Open
	}
	g.start = id
	g.cells[id].State = Start

	return nil
}

// SetTarget makes id the target cell. The previous target reverts to Open.
// If id currently holds the start, the start becomes unset; a wall at id is
// replaced.
func (g *Grid) SetTarget(id int) error {
	if err := g.checkID(id); err != nil {
		return err
	}
	if g.start == id {
		g.start = NoCell
	}
	if g.target != NoCell && g.target != id {
		g.cells[g.target].State = Open
	}
	g.target = id
	g.cells[id].State = Target

	return nil
}

// SetWall turns id into a wall (wall=true) or back to Open (wall=false).
// Walling the start or target unsets that endpoint. Clearing a non-wall cell
// is a no-op.
func (g *Grid) SetWall(id int, wall bool) error {
	if err := g.checkID(id); err != nil {
		return err
	}
	if !wall {
		if g.cells[id].State == Wall {
			g.cells[id].State = Open
		}
		return nil
	}
	g.releaseEndpoint(id)
	g.cells[id].State = Wall

	return nil
}

// Clear resets id to Open, unsetting it as start or target if needed.
func (g *Grid) Clear(id int) error {
	if err := g.checkID(id); err != nil {
		return err
	}
	g.releaseEndpoint(id)
	g.cells[id].State = Open

	return nil
}

// Cycle advances id through Open → Wall → Start → Target → Open, the
// click behavior of the grid editor, and returns the new state.
// Overlay states (Visited, OnPath) count as Open.
func (g *Grid) Cycle(id int) (State, error) {
	if err := g.checkID(id); err != nil {
		return Open, err
	}
	var err error
	switch g.cells[id].State {
	case Wall:
		err = g.SetStart(id)
	case Start:
		err = g.SetTarget(id)
	case Target:
		err = g.Clear(id)
	default:
		err = g.SetWall(id, true)
	}

	return g.cells[id].State, err
}

// Paint toggles id between Open and Wall, the drag behavior of the grid
// editor, and returns the new state. Start and target cells are left alone.
func (g *Grid) Paint(id int) (State, error) {
	if err := g.checkID(id); err != nil {
		return Open, err
	}
	switch s := g.cells[id].State; {
	case s == Wall:
		g.cells[id].State = Open
	case s.overlay():
		g.cells[id].State = Wall
	}

	return g.cells[id].State, nil
}

// Mark applies a presentation overlay (Open, Visited or OnPath) to id.
// Walls and endpoints are never overridden; marking one returns
// ErrBadOverlay so renderers can skip it.
func (g *Grid) Mark(id int, s State) error {
	if err := g.checkID(id); err != nil {
		return err
	}
	if !s.overlay() {
		return fmt.Errorf("%w: %s is not an overlay state", ErrBadOverlay, s)
	}
	if cur := g.cells[id].State; !cur.overlay() {
		return fmt.Errorf("%w: cell %d is %s", ErrBadOverlay, id, cur)
	}
	g.cells[id].State = s

	return nil
}

// ResetOverlays turns every Visited and OnPath cell back to Open.
func (g *Grid) ResetOverlays() {
	for i := range g.cells {
		if s := g.cells[i].State; s == Visited || s == OnPath {
			g.cells[i].State = Open
		}
	}
}

// Reset turns every cell Open and unsets start and target.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].State = Open
	}
	g.start, g.target = NoCell, NoCell
}

func (g *Grid) releaseEndpoint(id int) {
	if g.start == id {
		g.start = NoCell
	}
	if g.target == id {
		g.target = NoCell
	}
}
