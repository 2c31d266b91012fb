package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/pathviz/adjacency"
	"github.com/katalvlaran/pathviz/gridgraph"
)

// Action is what a key press asks for.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionCycle     // open → wall → start → target → open
	ActionPaint     // toggle open/wall
	ActionClear     // back to open
	ActionSetStart  // move the start here
	ActionSetTarget // move the target here
	ActionTopology  // switch 4/8 directional
	ActionRun
	ActionCancel
	ActionReset // drop visited and path marks
	ActionQuit
)

var actionNames = [...]string{
	"none", "up", "down", "left", "right", "cycle", "paint", "clear",
	"start", "target", "topology", "run", "cancel", "reset", "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// edits reports whether a changes the grid.
func (a Action) edits() bool {
	return a >= ActionCycle && a <= ActionTopology
}

// HelpText lists the key bindings.
const HelpText = "arrows/hjkl move  space cycle  w wall  x clear  s start  t target  d 4/8  enter run  c cancel  r reset  q quit"

// ActionForKey maps a key (and its rune for KeyRune) to an Action.
func ActionForKey(key tcell.Key, ch rune) Action {
	switch key {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEnter:
		return ActionRun
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionClear
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ch {
	case 'k':
		return ActionUp
	case 'j':
		return ActionDown
	case 'h':
		return ActionLeft
	case 'l':
		return ActionRight
	case ' ':
		return ActionCycle
	case 'w':
		return ActionPaint
	case 'x':
		return ActionClear
	case 's':
		return ActionSetStart
	case 't':
		return ActionSetTarget
	case 'd':
		return ActionTopology
	case 'c':
		return ActionCancel
	case 'r':
		return ActionReset
	case 'q':
		return ActionQuit
	default:
		return ActionNone
	}
}

// Editor applies input to the renderer's grid. While locked (a run is
// active) grid edits are ignored; run control and quitting still work.
type Editor struct {
	r       *Renderer
	cursor  int
	locked  bool
	drag    bool // mouse button held
	lastHit int  // last cell touched by the held button
}

// NewEditor returns an Editor with the cursor on cell 0.
func NewEditor(r *Renderer) *Editor {
	e := &Editor{r: r, lastHit: gridgraph.NoCell}
	r.SetCursor(0)

	return e
}

// Cursor returns the cell under the keyboard cursor.
func (e *Editor) Cursor() int { return e.cursor }

// SetLocked enables or disables grid edits.
func (e *Editor) SetLocked(locked bool) { e.locked = locked }

// Locked reports whether grid edits are disabled.
func (e *Editor) Locked() bool { return e.locked }

// HandleKey applies the key's action and returns it so the caller can act on
// run control (ActionRun, ActionCancel, ActionReset, ActionQuit). Edits
// refused while locked return ActionNone.
func (e *Editor) HandleKey(ev *tcell.EventKey) (Action, error) {
	a := ActionForKey(ev.Key(), ev.Rune())

	return e.Apply(a)
}

// Apply performs a on the cursor cell.
func (e *Editor) Apply(a Action) (Action, error) {
	if e.locked && a.edits() {
		return ActionNone, nil
	}
	switch a {
	case ActionUp:
		e.move(0, -1)
	case ActionDown:
		e.move(0, 1)
	case ActionLeft:
		e.move(-1, 0)
	case ActionRight:
		e.move(1, 0)
	case ActionCycle, ActionPaint, ActionClear, ActionSetStart, ActionSetTarget, ActionTopology:
		return a, e.r.Update(func(g *gridgraph.Grid) error {
			return e.edit(g, a, e.cursor)
		})
	}

	return a, nil
}

func (e *Editor) edit(g *gridgraph.Grid, a Action, id int) error {
	var err error
	switch a {
	case ActionCycle:
		_, err = g.Cycle(id)
	case ActionPaint:
		_, err = g.Paint(id)
	case ActionClear:
		err = g.Clear(id)
	case ActionSetStart:
		err = g.SetStart(id)
	case ActionSetTarget:
		err = g.SetTarget(id)
	case ActionTopology:
		next := adjacency.Adjacent8
		if g.Topology() == adjacency.Adjacent8 {
			next = adjacency.Adjacent4
		}
		err = g.SetTopology(next)
	}

	return err
}

func (e *Editor) move(dx, dy int) {
	g := e.r.Grid()
	x, y := g.Coordinate(e.cursor)
	x, y = clamp(x+dx, g.RowCount()), clamp(y+dy, g.RowCount())
	e.cursor = g.Index(x, y)
	e.r.SetCursor(e.cursor)
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// HandleMouse implements click-to-cycle and drag-to-paint. A press on a cell
// cycles it; moving onto other cells with the button held paints them. The
// keyboard cursor follows the pointer.
func (e *Editor) HandleMouse(ev *tcell.EventMouse) error {
	x, y := ev.Position()
	held := ev.Buttons()&tcell.Button1 != 0
	if !held {
		e.drag, e.lastHit = false, gridgraph.NoCell
		return nil
	}

	id, ok := e.r.CellAtScreen(x, y)
	if !ok || id == e.lastHit {
		return nil
	}
	e.cursor = id
	e.r.SetCursor(id)

	action := ActionPaint
	if !e.drag {
		action = ActionCycle
	}
	e.drag, e.lastHit = true, id
	if e.locked {
		return nil
	}

	return e.r.Update(func(g *gridgraph.Grid) error {
		return e.edit(g, action, id)
	})
}
