package render

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/runner"
)

var _ runner.Observer = (*Renderer)(nil)

// Renderer owns the displayed grid and draws it on a tcell screen.
type Renderer struct {
	mu      sync.Mutex
	screen  tcell.Screen
	grid    *gridgraph.Grid
	originX int
	originY int
	cursor  int   // gridgraph.NoCell hides it
	preview []int // live path drawn by the last step
	status  string
	help    string
	logger  *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithOrigin places the top-left grid cell at screen column x, row y.
func WithOrigin(x, y int) Option {
	return func(r *Renderer) {
		r.originX, r.originY = x, y
	}
}

// WithHelp sets the line drawn under the status line.
func WithHelp(text string) Option {
	return func(r *Renderer) {
		r.help = text
	}
}

// WithLogger sets the renderer logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer returns a Renderer drawing g on screen. The screen must already
// be initialised.
func NewRenderer(screen tcell.Screen, g *gridgraph.Grid, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		grid:   g,
		cursor: gridgraph.NoCell,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Grid returns the displayed grid. Mutate it through Update.
func (r *Renderer) Grid() *gridgraph.Grid { return r.grid }

// Update runs fn on the displayed grid under the renderer lock and redraws.
func (r *Renderer) Update(fn func(g *gridgraph.Grid) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := fn(r.grid)
	r.drawLocked()
	r.screen.Show()

	return err
}

// Snapshot returns a copy of the displayed grid, taken under the lock.
func (r *Renderer) Snapshot() *gridgraph.Grid {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.grid.Clone()
}

// SetStatus replaces the status line.
func (r *Renderer) SetStatus(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = fmt.Sprintf(format, args...)
	r.drawLocked()
	r.screen.Show()
}

// Status returns the current status line.
func (r *Renderer) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.status
}

// Draw repaints the whole grid and the text lines.
func (r *Renderer) Draw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawLocked()
	r.screen.Show()
}

func (r *Renderer) drawLocked() {
	r.screen.Clear()
	for id := 0; id < r.grid.Len(); id++ {
		r.drawCellLocked(id)
	}
	row := r.originY + r.grid.RowCount() + 1
	r.drawText(r.originX, row, r.status, tcell.StyleDefault)
	r.drawText(r.originX, row+1, r.help, tcell.StyleDefault.Dim(true))
}

func (r *Renderer) drawCellLocked(id int) {
	c, err := r.grid.CellAt(id)
	if err != nil {
		return
	}
	style := StyleFor(c.State)
	glyphs := glyphsFor(c.State)
	if id == r.cursor {
		style = style.Reverse(true)
		glyphs = [CellWidth]rune{'[', ']'}
	}
	x, y := r.ScreenPos(id)
	for i, ch := range glyphs {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// ScreenPos returns the screen column and row of the left half of cell id.
func (r *Renderer) ScreenPos(id int) (x, y int) {
	cx, cy := r.grid.Coordinate(id)

	return r.originX + cx*CellWidth, r.originY + cy
}

// CellAtScreen maps a screen position to the grid cell drawn there.
func (r *Renderer) CellAtScreen(x, y int) (int, bool) {
	dx, dy := x-r.originX, y-r.originY
	if dx < 0 || dy < 0 {
		return gridgraph.NoCell, false
	}
	cx := dx / CellWidth
	if !r.grid.InBounds(cx, dy) {
		return gridgraph.NoCell, false
	}

	return r.grid.Index(cx, dy), true
}

// SetCursor moves the highlighted cell. gridgraph.NoCell hides the cursor.
func (r *Renderer) SetCursor(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.cursor
	r.cursor = id
	if prev != gridgraph.NoCell {
		r.drawCellLocked(prev)
	}
	if id != gridgraph.NoCell {
		r.drawCellLocked(id)
	}
	r.screen.Show()
}

// ClearOverlays removes visited and path marks from the display.
func (r *Renderer) ClearOverlays() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grid.ResetOverlays()
	r.preview = nil
	r.drawLocked()
	r.screen.Show()
}

// mark applies an overlay, skipping walls and endpoints.
func (r *Renderer) mark(id int, s gridgraph.State) {
	err := r.grid.Mark(id, s)
	switch {
	case err == nil:
		r.drawCellLocked(id)
	case errors.Is(err, gridgraph.ErrBadOverlay):
	default:
		r.logger.Debug("render: mark failed", slog.Int("cell", id), slog.String("error", err.Error()))
	}
}

// OnStep implements runner.Observer.
func (r *Renderer) OnStep(ev runner.StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.preview {
		r.mark(id, gridgraph.Visited)
	}
	if ev.Current != gridgraph.NoCell {
		r.mark(ev.Current, gridgraph.Visited)
	}
	for _, id := range ev.Preview {
		r.mark(id, gridgraph.OnPath)
	}
	r.preview = append(r.preview[:0], ev.Preview...)
	r.status = fmt.Sprintf("step %d  %s", ev.Index, ev.Status)
	r.drawLocked()
	r.screen.Show()
}

// OnDone implements runner.Observer.
func (r *Renderer) OnDone(o runner.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.preview {
		r.mark(id, gridgraph.Visited)
	}
	if o.Found() {
		for _, id := range o.Path {
			r.mark(id, gridgraph.OnPath)
		}
		r.status = fmt.Sprintf("found: %d cells, cost %.3f, %d steps, %d expanded",
			len(o.Path), o.Cost, o.Steps, o.Expanded)
	} else {
		r.status = fmt.Sprintf("%s after %d steps, %d expanded", o.Status, o.Steps, o.Expanded)
	}
	r.preview = nil
	r.logger.Debug("render: run drawn", slog.String("run_id", o.RunID), slog.String("status", o.Status.String()))
	r.drawLocked()
	r.screen.Show()
}
