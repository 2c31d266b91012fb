package astar

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/pqueue"
)

// Engine runs one A* search from start to target over a grid.
type Engine struct {
	grid   *gridgraph.Grid // read-only for the lifetime of the run
	start  int
	target int
	logger *slog.Logger

	status   Status
	steps    int
	expanded int

	// Per-run search state, nil once the run has ended.
	closed   map[int]struct{}
	open     *pqueue.Queue[int]
	cameFrom map[int]int
	gScore   map[int]float64
	fScore   map[int]float64

	path []int
	cost float64
}

// New validates start and target against g and returns an Engine in the
// Ready state with its search state seeded.
//
// Validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start and target must be set and in range (ErrInvalidEndpoints).
//  3. neither may be a wall (ErrInvalidEndpoints).
//  4. start != target (ErrInvalidEndpoints).
//
// No search state is allocated when validation fails.
func New(g *gridgraph.Grid, start, target int, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := validateEndpoints(g, start, target); err != nil {
		return nil, err
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		grid:     g,
		start:    start,
		target:   target,
		logger:   cfg.Logger,
		status:   Ready,
		closed:   make(map[int]struct{}),
		open:     pqueue.New[int](g.RowCount()),
		cameFrom: make(map[int]int),
		gScore:   map[int]float64{start: 0},
		fScore:   make(map[int]float64),
	}
	h := e.Heuristic(start, target)
	e.fScore[start] = h
	e.open.Push(start, h)

	return e, nil
}

// FromGrid is New with the grid's own start and target cells.
func FromGrid(g *gridgraph.Grid, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	start, _ := g.StartID()
	target, _ := g.TargetID()

	return New(g, start, target, opts...)
}

func validateEndpoints(g *gridgraph.Grid, start, target int) error {
	for _, ep := range []struct {
		name string
		id   int
	}{{"start", start}, {"target", target}} {
		if ep.id == gridgraph.NoCell {
			return fmt.Errorf("%w: %s is unset", ErrInvalidEndpoints, ep.name)
		}
		c, err := g.CellAt(ep.id)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidEndpoints, ep.name, err)
		}
		if !c.Walkable() {
			return fmt.Errorf("%w: %s %d is a wall", ErrInvalidEndpoints, ep.name, ep.id)
		}
	}
	if start == target {
		return fmt.Errorf("%w: start and target are both %d", ErrInvalidEndpoints, start)
	}

	return nil
}

// Step performs one pop-and-expand cycle. It is valid in Ready (which moves
// the engine to Running) and Running; otherwise it returns ErrInvalidState.
//
//  1. Empty frontier: the engine becomes Exhausted.
//  2. The minimum-f cell is popped. If it is the target the path is
//     reconstructed and the engine becomes Found.
//  3. Otherwise the cell is closed and each neighbor relaxed.
func (e *Engine) Step() (StepResult, error) {
	switch e.status {
	case Ready:
		e.status = Running
		e.logger.Debug("astar: search started",
			slog.Int("start", e.start),
			slog.Int("target", e.target),
			slog.String("topology", e.grid.Topology().String()))
	case Running:
	default:
		return StepResult{Step: e.steps, Current: gridgraph.NoCell, Status: e.status},
			fmt.Errorf("%w: step called in %s", ErrInvalidState, e.status)
	}
	e.steps++

	if e.open.Len() == 0 {
		e.finish(Exhausted)
		return StepResult{Step: e.steps, Current: gridgraph.NoCell, Status: Exhausted}, nil
	}

	current, _, err := e.open.PopMin()
	if err != nil {
		// Len() was checked above; reaching this is a bug.
		return StepResult{Step: e.steps, Current: gridgraph.NoCell, Status: e.status},
			fmt.Errorf("astar: frontier underflow: %w", err)
	}

	if current == e.target {
		e.path = e.PathTo(current)
		e.cost = e.gScore[current]
		res := StepResult{
			Step:    e.steps,
			Current: current,
			Preview: e.path,
			Path:    e.path,
			Cost:    e.cost,
			Status:  Found,
		}
		e.finish(Found)
		return res, nil
	}

	e.closed[current] = struct{}{}
	relaxed := e.expand(current)
	e.logger.Debug("astar: step",
		slog.Int("step", e.steps),
		slog.Int("current", current),
		slog.Int("relaxed", len(relaxed)),
		slog.Int("frontier", e.open.Len()))

	return StepResult{
		Step:    e.steps,
		Current: current,
		Preview: e.PathTo(current),
		Relaxed: relaxed,
		Status:  Running,
	}, nil
}

// expand relaxes every neighbor of current and returns those whose g-score
// improved.
func (e *Engine) expand(current int) []int {
	var relaxed []int
	gCur := e.gScore[current]
	for _, nb := range e.grid.Neighbors(current) {
		tentative := gCur + e.Heuristic(current, nb)
		gNb, known := e.gScore[nb]

		if _, closed := e.closed[nb]; closed && tentative >= gNb {
			continue
		}
		queued := e.open.Contains(nb)
		if queued && tentative >= gNb {
			continue
		}
		if !queued && known && tentative >= gNb {
			continue
		}

		e.cameFrom[nb] = current
		e.gScore[nb] = tentative
		f := tentative + e.Heuristic(nb, e.target)
		e.fScore[nb] = f
		if queued {
			e.open.Update(nb, f)
		} else {
			// Re-opened closed cells land here too.
			delete(e.closed, nb)
			e.open.Push(nb, f)
		}
		relaxed = append(relaxed, nb)
	}

	return relaxed
}

// Cancel aborts the run. It is valid in Ready and Running; the engine becomes
// Cancelled and its search state is released. No partial result is kept.
func (e *Engine) Cancel() error {
	if e.status != Ready && e.status != Running {
		return fmt.Errorf("%w: cancel called in %s", ErrInvalidState, e.status)
	}
	e.finish(Cancelled)

	return nil
}

// finish moves to a terminal status and drops the per-run state.
func (e *Engine) finish(s Status) {
	e.status = s
	e.expanded = len(e.closed)
	e.closed, e.open, e.cameFrom, e.gScore, e.fScore = nil, nil, nil, nil, nil

	e.logger.Info("astar: search finished",
		slog.String("status", s.String()),
		slog.Int("steps", e.steps),
		slog.Int("expanded", e.expanded),
		slog.Int("path_len", len(e.path)),
		slog.Float64("cost", e.cost))
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Steps returns the number of Step calls that did work.
func (e *Engine) Steps() int { return e.steps }

// Start returns the start cell id.
func (e *Engine) Start() int { return e.start }

// Target returns the target cell id.
func (e *Engine) Target() int { return e.target }

// Grid returns the grid the engine searches.
func (e *Engine) Grid() *gridgraph.Grid { return e.grid }

// Expanded returns the closed-set size: live while running, frozen at the
// value it had when the run ended.
func (e *Engine) Expanded() int {
	if e.status.Terminal() {
		return e.expanded
	}

	return len(e.closed)
}

// Open returns the frontier in pop order. Nil once the run has ended.
func (e *Engine) Open() []int {
	if e.open == nil {
		return nil
	}

	return e.open.Items()
}

// Closed returns the closed set in ascending id order. Nil once the run has
// ended.
func (e *Engine) Closed() []int {
	if e.closed == nil {
		return nil
	}
	ids := make([]int, 0, len(e.closed))
	for id := range e.closed {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// IsClosed reports whether id has been expanded in the running search.
func (e *Engine) IsClosed(id int) bool {
	_, ok := e.closed[id]
	return ok
}

// GScore returns the best known cost from start to id. The second result is
// false when id has no score (implicitly +Inf) or the run has ended.
func (e *Engine) GScore(id int) (float64, bool) {
	g, ok := e.gScore[id]
	return g, ok
}

// FScore returns g(id) + h(id, target) as last recorded.
func (e *Engine) FScore(id int) (float64, bool) {
	f, ok := e.fScore[id]
	return f, ok
}

// CameFrom returns a copy of the predecessor map. Nil once the run has ended.
func (e *Engine) CameFrom() map[int]int {
	if e.cameFrom == nil {
		return nil
	}
	out := make(map[int]int, len(e.cameFrom))
	for k, v := range e.cameFrom {
		out[k] = v
	}

	return out
}

// Result returns the run summary. Path and Cost are set only when Found.
func (e *Engine) Result() Result {
	return Result{
		Path:     e.path,
		Cost:     e.cost,
		Steps:    e.steps,
		Expanded: e.Expanded(),
		Found:    e.status == Found,
		Status:   e.status,
	}
}
