package render_test

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/adjacency"
	"github.com/katalvlaran/pathviz/astar"
	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/render"
	"github.com/katalvlaran/pathviz/runner"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return screen
}

func parse(t *testing.T, rows ...string) *gridgraph.Grid {
	t.Helper()
	g, err := gridgraph.Parse(rows)
	require.NoError(t, err)

	return g
}

// styleAt returns the style of the left half of cell id.
func styleAt(t *testing.T, screen tcell.Screen, r *render.Renderer, id int) tcell.Style {
	t.Helper()
	x, y := r.ScreenPos(id)
	_, _, style, _ := screen.GetContent(x, y)

	return style
}

func TestStyleFor_Distinct(t *testing.T) {
	seen := map[tcell.Style]gridgraph.State{}
	for _, s := range []gridgraph.State{
		gridgraph.Open, gridgraph.Wall, gridgraph.Start,
		gridgraph.Target, gridgraph.Visited, gridgraph.OnPath,
	} {
		st := render.StyleFor(s)
		prev, dup := seen[st]
		assert.False(t, dup, "%s shares a style with %s", s, prev)
		seen[st] = s
	}
}

func TestRenderer_Draw(t *testing.T) {
	screen := newScreen(t)
	g := parse(t, "S#", ".T")
	r := render.NewRenderer(screen, g, render.WithOrigin(2, 1))
	r.Draw()

	x, y := r.ScreenPos(3)
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y)

	for id, want := range []gridgraph.State{gridgraph.Start, gridgraph.Wall, gridgraph.Open, gridgraph.Target} {
		assert.Equal(t, render.StyleFor(want), styleAt(t, screen, r, id), "cell %d", id)
	}
	ch, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, 'S', ch)
	ch, _, _, _ = screen.GetContent(4, 2)
	assert.Equal(t, 'T', ch)
}

func TestRenderer_CellAtScreen(t *testing.T) {
	screen := newScreen(t)
	r := render.NewRenderer(screen, parse(t, "...", "...", "..."), render.WithOrigin(1, 1))

	cases := []struct {
		x, y int
		id   int
		ok   bool
	}{
		{1, 1, 0, true},
		{2, 1, 0, true}, // right half of the same cell
		{3, 1, 1, true},
		{6, 3, 8, true},
		{0, 1, gridgraph.NoCell, false},
		{7, 1, gridgraph.NoCell, false},
		{1, 4, gridgraph.NoCell, false},
	}
	for _, tc := range cases {
		id, ok := r.CellAtScreen(tc.x, tc.y)
		assert.Equal(t, tc.ok, ok, "(%d,%d)", tc.x, tc.y)
		assert.Equal(t, tc.id, id, "(%d,%d)", tc.x, tc.y)
	}
}

func TestRenderer_ObservesRun(t *testing.T) {
	screen := newScreen(t)
	display := parse(t,
		"S..",
		".#.",
		"..T",
	)
	r := render.NewRenderer(screen, display)

	e, err := astar.FromGrid(display.Clone())
	require.NoError(t, err)

	var previews [][]int
	obs := runner.Multi(r, runner.ObserverFuncs{Step: func(ev runner.StepEvent) {
		previews = append(previews, ev.Preview)
	}})
	out, err := runner.New(runner.Config{}).Run(context.Background(), e, obs)
	require.NoError(t, err)
	require.True(t, out.Found())

	onPath := map[int]bool{}
	for _, id := range out.Path {
		onPath[id] = true
	}
	for id := 0; id < display.Len(); id++ {
		c, err := display.CellAt(id)
		require.NoError(t, err)
		switch {
		case id == 0:
			assert.Equal(t, gridgraph.Start, c.State)
		case id == 8:
			assert.Equal(t, gridgraph.Target, c.State)
		case id == 4:
			assert.Equal(t, gridgraph.Wall, c.State)
		case onPath[id]:
			assert.Equal(t, gridgraph.OnPath, c.State, "cell %d", id)
		default:
			assert.NotEqual(t, gridgraph.OnPath, c.State, "cell %d left on a stale preview", id)
		}
		assert.Equal(t, render.StyleFor(c.State), styleAt(t, screen, r, id), "cell %d", id)
	}
	assert.Contains(t, r.Status(), "found")
	assert.NotEmpty(t, previews)

	r.ClearOverlays()
	for id := 0; id < display.Len(); id++ {
		c, _ := display.CellAt(id)
		assert.NotEqual(t, gridgraph.OnPath, c.State)
		assert.NotEqual(t, gridgraph.Visited, c.State)
	}
}

func TestRenderer_OnDoneNotFound(t *testing.T) {
	screen := newScreen(t)
	r := render.NewRenderer(screen, parse(t, "S#", "#T"))
	r.OnDone(runner.Outcome{Status: astar.Exhausted, Steps: 2, Expanded: 1})
	assert.Equal(t, "exhausted after 2 steps, 1 expanded", r.Status())
}

func TestRenderer_StatusAndHelpLines(t *testing.T) {
	screen := newScreen(t)
	r := render.NewRenderer(screen, parse(t, "S.", ".T"), render.WithHelp("help"))
	r.SetStatus("hello %d", 7)

	line := func(y int) string {
		var out []rune
		for x := 0; x < 7; x++ {
			ch, _, _, _ := screen.GetContent(x, y)
			out = append(out, ch)
		}
		return string(out)
	}
	assert.Equal(t, "hello 7", line(3))
	assert.Equal(t, "help", line(4)[:4])
}

//----------------------------------------------------------------------------//
// Editor
//----------------------------------------------------------------------------//

func TestActionForKey(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		ch   rune
		want render.Action
	}{
		{tcell.KeyUp, 0, render.ActionUp},
		{tcell.KeyRune, 'j', render.ActionDown},
		{tcell.KeyRune, ' ', render.ActionCycle},
		{tcell.KeyRune, 'w', render.ActionPaint},
		{tcell.KeyDelete, 0, render.ActionClear},
		{tcell.KeyRune, 's', render.ActionSetStart},
		{tcell.KeyRune, 't', render.ActionSetTarget},
		{tcell.KeyRune, 'd', render.ActionTopology},
		{tcell.KeyEnter, 0, render.ActionRun},
		{tcell.KeyRune, 'c', render.ActionCancel},
		{tcell.KeyRune, 'r', render.ActionReset},
		{tcell.KeyRune, 'q', render.ActionQuit},
		{tcell.KeyEscape, 0, render.ActionQuit},
		{tcell.KeyRune, 'z', render.ActionNone},
		{tcell.KeyF1, 0, render.ActionNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, render.ActionForKey(tc.key, tc.ch), "%v %q", tc.key, tc.ch)
	}
	assert.Equal(t, "cycle", render.ActionCycle.String())
}

func TestEditor_Keyboard(t *testing.T) {
	screen := newScreen(t)
	g := parse(t, "...", "...", "...")
	r := render.NewRenderer(screen, g)
	ed := render.NewEditor(r)

	press := func(key tcell.Key, ch rune) render.Action {
		a, err := ed.HandleKey(tcell.NewEventKey(key, ch, tcell.ModNone))
		require.NoError(t, err)
		return a
	}

	press(tcell.KeyLeft, 0) // clamped at the edge
	assert.Equal(t, 0, ed.Cursor())
	assert.Equal(t, render.ActionSetStart, press(tcell.KeyRune, 's'))
	press(tcell.KeyRight, 0)
	press(tcell.KeyRune, 'j')
	assert.Equal(t, 4, ed.Cursor())
	press(tcell.KeyRune, 'w')
	press(tcell.KeyDown, 0)
	press(tcell.KeyRight, 0)
	press(tcell.KeyRight, 0)
	press(tcell.KeyRune, 't')
	assert.Equal(t, 8, ed.Cursor())

	start, _ := g.StartID()
	target, _ := g.TargetID()
	assert.Equal(t, 0, start)
	assert.Equal(t, 8, target)
	assert.False(t, g.Walkable(4))

	press(tcell.KeyRune, 'd')
	assert.Equal(t, adjacency.Adjacent8, g.Topology())

	// the cursor cell is drawn reversed
	assert.Equal(t, render.StyleFor(gridgraph.Target).Reverse(true), styleAt(t, screen, r, 8))

	ed.SetLocked(true)
	assert.Equal(t, render.ActionNone, press(tcell.KeyRune, 'x'))
	assert.Equal(t, gridgraph.Target, mustCell(t, g, 8).State, "locked editor ignores edits")
	assert.Equal(t, render.ActionCancel, press(tcell.KeyRune, 'c'))
	assert.Equal(t, render.ActionQuit, press(tcell.KeyRune, 'q'))

	ed.SetLocked(false)
	press(tcell.KeyRune, 'x')
	_, ok := g.TargetID()
	assert.False(t, ok)
}

func TestEditor_MouseClickAndDrag(t *testing.T) {
	screen := newScreen(t)
	g := parse(t, "...", "...", "...")
	r := render.NewRenderer(screen, g)
	ed := render.NewEditor(r)

	mouse := func(x, y int, btn tcell.ButtonMask) {
		require.NoError(t, ed.HandleMouse(tcell.NewEventMouse(x, y, btn, tcell.ModNone)))
	}

	// click cycles open → wall → start
	mouse(0, 0, tcell.Button1)
	mouse(0, 0, tcell.ButtonNone)
	mouse(1, 0, tcell.Button1) // right half of cell 0
	mouse(1, 0, tcell.ButtonNone)
	assert.Equal(t, gridgraph.Start, mustCell(t, g, 0).State)

	// drag from cell 1 across row 1 paints walls
	mouse(2, 0, tcell.Button1)
	mouse(2, 1, tcell.Button1)
	mouse(3, 1, tcell.Button1) // same cell, ignored
	mouse(4, 1, tcell.Button1)
	mouse(4, 1, tcell.ButtonNone)
	for _, id := range []int{1, 4, 5} {
		assert.Equal(t, gridgraph.Wall, mustCell(t, g, id).State, "cell %d", id)
	}
	assert.Equal(t, 5, ed.Cursor())

	// painting over a wall clears it, endpoints are untouched
	mouse(0, 2, tcell.Button1) // cycle cell 6 to wall
	mouse(0, 0, tcell.Button1) // paint skips the start
	mouse(2, 0, tcell.Button1) // paint clears cell 1
	mouse(2, 0, tcell.ButtonNone)
	assert.Equal(t, gridgraph.Wall, mustCell(t, g, 6).State)
	assert.Equal(t, gridgraph.Start, mustCell(t, g, 0).State)
	assert.Equal(t, gridgraph.Open, mustCell(t, g, 1).State)

	// clicks outside the grid do nothing
	mouse(40, 20, tcell.Button1)
	mouse(40, 20, tcell.ButtonNone)
}

func mustCell(t *testing.T, g *gridgraph.Grid, id int) gridgraph.Cell {
	t.Helper()
	c, err := g.CellAt(id)
	require.NoError(t, err)

	return c
}
