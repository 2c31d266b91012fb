package astar_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/adjacency"
	"github.com/katalvlaran/pathviz/astar"
	"github.com/katalvlaran/pathviz/gridgraph"
)

// blank returns an n×n open grid with the given walls.
func blank(t *testing.T, n int, topo adjacency.Topology, walls ...int) *gridgraph.Grid {
	t.Helper()
	g, err := gridgraph.New(n, gridgraph.WithTopology(topo))
	require.NoError(t, err)
	for _, id := range walls {
		require.NoError(t, g.SetWall(id, true))
	}

	return g
}

// runToEnd steps e until it is terminal and returns every StepResult.
func runToEnd(t *testing.T, e *astar.Engine) []astar.StepResult {
	t.Helper()
	var out []astar.StepResult
	for !e.Status().Terminal() {
		res, err := e.Step()
		require.NoError(t, err)
		out = append(out, res)
		require.Less(t, len(out), 100000, "engine did not terminate")
	}

	return out
}

//----------------------------------------------------------------------------//
// Construction and validation
//----------------------------------------------------------------------------//

func TestNew_Validation(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent4, 4)

	_, err := astar.New(nil, 0, 8)
	assert.ErrorIs(t, err, astar.ErrNilGrid)

	cases := []struct {
		name          string
		start, target int
	}{
		{"unset start", gridgraph.NoCell, 8},
		{"unset target", 0, gridgraph.NoCell},
		{"start out of range", 9, 8},
		{"target out of range", 0, -7},
		{"start is wall", 4, 8},
		{"target is wall", 0, 4},
		{"start equals target", 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := astar.New(g, tc.start, tc.target)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, astar.ErrInvalidEndpoints)
		})
	}
}

func TestNew_SeedsFrontier(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent4)
	e, err := astar.New(g, 0, 8)
	require.NoError(t, err)

	assert.Equal(t, astar.Ready, e.Status())
	assert.Equal(t, []int{0}, e.Open())
	assert.Empty(t, e.Closed())
	gs, ok := e.GScore(0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, gs)
	f, ok := e.FScore(0)
	assert.True(t, ok)
	assert.InDelta(t, 2*math.Sqrt2, f, 1e-12)
	_, ok = e.GScore(1)
	assert.False(t, ok, "unvisited cells have implicit +Inf g")
	assert.Equal(t, []int{0}, e.PathTo(0))
}

func TestFromGrid(t *testing.T) {
	g, err := gridgraph.Parse([]string{
		"...",
		"S#T",
		"...",
	})
	require.NoError(t, err)

	e, err := astar.FromGrid(g)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Start())
	assert.Equal(t, 5, e.Target())

	require.NoError(t, g.SetWall(5, true)) // unsets the target
	_, err = astar.FromGrid(g)
	assert.ErrorIs(t, err, astar.ErrInvalidEndpoints)

	_, err = astar.FromGrid(nil)
	assert.ErrorIs(t, err, astar.ErrNilGrid)
}

//----------------------------------------------------------------------------//
// Concrete scenarios
//----------------------------------------------------------------------------//

func TestStep_Open3x3Adjacent4(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent4)
	e, err := astar.New(g, 0, 8)
	require.NoError(t, err)

	steps := runToEnd(t, e)
	last := steps[len(steps)-1]
	assert.Equal(t, astar.Found, last.Status)
	assert.Equal(t, []int{0, 1, 4, 5, 8}, last.Path)
	assert.Equal(t, 8, last.Current)
	assert.InDelta(t, 4.0, last.Cost, 1e-12)

	res := e.Result()
	assert.True(t, res.Found)
	assert.Equal(t, last.Path, res.Path)
	assert.Equal(t, len(steps), res.Steps)
	assert.Equal(t, 8, res.Expanded)
}

func TestStep_Open3x3Adjacent8(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent8)
	e, err := astar.New(g, 0, 8)
	require.NoError(t, err)

	steps := runToEnd(t, e)
	require.Len(t, steps, 3)

	// The diagonal neighbor wins the first expansion.
	assert.Equal(t, 0, steps[0].Current)
	assert.Equal(t, []int{1, 3, 4}, steps[0].Relaxed)
	assert.Equal(t, []int{4, 1, 3}, firstOpen(t, g))

	last := steps[2]
	assert.Equal(t, astar.Found, last.Status)
	assert.Equal(t, []int{0, 4, 8}, last.Path)
	assert.InDelta(t, 2*math.Sqrt2, last.Cost, 1e-12)
}

// firstOpen returns the frontier of a fresh 0→8 engine after one step.
func firstOpen(t *testing.T, g *gridgraph.Grid) []int {
	t.Helper()
	e, err := astar.New(g, 0, 8)
	require.NoError(t, err)
	_, err = e.Step()
	require.NoError(t, err)

	return e.Open()
}

func TestStep_DetourAroundWalls(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent4, 1, 4)
	res, err := astar.Search(context.Background(), g, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, astar.Found, res.Status)
	assert.Equal(t, []int{0, 3, 6, 7, 8}, res.Path)
	assert.InDelta(t, 4.0, res.Cost, 1e-12)
}

func TestStep_Exhausted(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent4, 1, 3)
	e, err := astar.New(g, 0, 8)
	require.NoError(t, err)

	first, err := e.Step()
	require.NoError(t, err)
	assert.Equal(t, astar.Running, first.Status)
	assert.Equal(t, 0, first.Current)
	assert.Empty(t, first.Relaxed)

	second, err := e.Step()
	require.NoError(t, err)
	assert.Equal(t, astar.Exhausted, second.Status)
	assert.Equal(t, gridgraph.NoCell, second.Current)
	assert.Nil(t, second.Path)

	res := e.Result()
	assert.False(t, res.Found)
	assert.Equal(t, 1, res.Expanded)
	assert.Equal(t, len(g.Reachable(0)), res.Expanded)
	assert.Nil(t, e.Open(), "search state is released")
	assert.Nil(t, e.Closed())
	assert.Nil(t, e.CameFrom())
}

func TestStep_ExhaustedBarrier(t *testing.T) {
	g, err := gridgraph.Parse([]string{
		"S...#....",
		"....#....",
		"....#....",
		"....#....",
		"....#....",
		"....#....",
		"....#....",
		"....#....",
		"....#...T",
	}, gridgraph.WithTopology(adjacency.Adjacent8))
	require.NoError(t, err)

	res, err := astar.Search(context.Background(), g, 0, 80)
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.Equal(t, astar.Exhausted, res.Status)
	assert.Equal(t, len(g.Reachable(0)), res.Expanded)
	assert.Equal(t, 36, res.Expanded)
}

//----------------------------------------------------------------------------//
// State machine
//----------------------------------------------------------------------------//

func TestStep_AfterTerminal(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent8)
	e, err := astar.New(g, 0, 8)
	require.NoError(t, err)
	runToEnd(t, e)

	res, err := e.Step()
	assert.ErrorIs(t, err, astar.ErrInvalidState)
	assert.Equal(t, astar.Found, res.Status)
	assert.ErrorIs(t, e.Cancel(), astar.ErrInvalidState)

	// Only the found path survives the run.
	assert.Equal(t, []int{0, 4, 8}, e.PathTo(8))
	assert.Nil(t, e.PathTo(4))
	_, ok := e.GScore(8)
	assert.False(t, ok)
}

func TestCancel(t *testing.T) {
	g := blank(t, 5, adjacency.Adjacent4)

	t.Run("from ready", func(t *testing.T) {
		e, err := astar.New(g, 0, 24)
		require.NoError(t, err)
		require.NoError(t, e.Cancel())
		assert.Equal(t, astar.Cancelled, e.Status())
		_, err = e.Step()
		assert.ErrorIs(t, err, astar.ErrInvalidState)
	})

	t.Run("from running", func(t *testing.T) {
		e, err := astar.New(g, 0, 24)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err = e.Step()
			require.NoError(t, err)
		}
		require.Equal(t, astar.Running, e.Status())
		require.NoError(t, e.Cancel())

		res := e.Result()
		assert.Equal(t, astar.Cancelled, res.Status)
		assert.False(t, res.Found)
		assert.Nil(t, res.Path)
		assert.Equal(t, 3, res.Steps)
		assert.Equal(t, 3, res.Expanded)
		assert.ErrorIs(t, e.Cancel(), astar.ErrInvalidState)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ready", astar.Ready.String())
	assert.Equal(t, "running", astar.Running.String())
	assert.Equal(t, "found", astar.Found.String())
	assert.Equal(t, "exhausted", astar.Exhausted.String())
	assert.Equal(t, "cancelled", astar.Cancelled.String())
	assert.Equal(t, "Status(42)", astar.Status(42).String())
	assert.False(t, astar.Running.Terminal())
	assert.True(t, astar.Cancelled.Terminal())
}

//----------------------------------------------------------------------------//
// Invariants
//----------------------------------------------------------------------------//

func TestStep_Deterministic(t *testing.T) {
	for _, topo := range []adjacency.Topology{adjacency.Adjacent4, adjacency.Adjacent8} {
		g := randomGrid(t, 15, 0.25, topo, 7)
		a, err := astar.New(g, 0, g.Len()-1)
		require.NoError(t, err)
		b, err := astar.New(g, 0, g.Len()-1)
		require.NoError(t, err)

		assert.Equal(t, runToEnd(t, a), runToEnd(t, b), "topology %s", topo)
		assert.Equal(t, a.Result(), b.Result())
	}
}

func TestStep_GScoresOnlyDecrease(t *testing.T) {
	g := randomGrid(t, 12, 0.2, adjacency.Adjacent8, 3)
	e, err := astar.New(g, 0, g.Len()-1)
	require.NoError(t, err)

	snapshot := func() map[int]float64 {
		m := make(map[int]float64)
		for id := 0; id < g.Len(); id++ {
			if v, ok := e.GScore(id); ok {
				m[id] = v
			}
		}
		return m
	}

	for !e.Status().Terminal() {
		before := snapshot()
		res, err := e.Step()
		require.NoError(t, err)
		if res.Status.Terminal() {
			break
		}
		after := snapshot()

		relaxed := make(map[int]bool, len(res.Relaxed))
		for _, id := range res.Relaxed {
			relaxed[id] = true
			old, seen := before[id]
			if seen {
				assert.Less(t, after[id], old, "g(%d) must strictly decrease", id)
			}
		}
		for id, v := range before {
			if !relaxed[id] {
				assert.Equal(t, v, after[id], "g(%d) changed without relaxation", id)
			}
		}
		// every preview is a connected chain from start to the expanded cell
		require.NotEmpty(t, res.Preview)
		assert.Equal(t, 0, res.Preview[0])
		assert.Equal(t, res.Current, res.Preview[len(res.Preview)-1])
		assertChain(t, g, res.Preview)
	}
}

func TestClosed_Sorted(t *testing.T) {
	g := blank(t, 4, adjacency.Adjacent8)
	e, err := astar.New(g, 15, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = e.Step()
		require.NoError(t, err)
	}
	closed := e.Closed()
	assert.IsNonDecreasing(t, closed)
	assert.Len(t, closed, e.Expanded())
	for _, id := range closed {
		assert.True(t, e.IsClosed(id))
	}

	from := e.CameFrom()
	from[99] = 1
	_, leaked := e.CameFrom()[99]
	assert.False(t, leaked, "CameFrom returns a copy")
}

//----------------------------------------------------------------------------//
// Helpers
//----------------------------------------------------------------------------//

func TestHeuristic(t *testing.T) {
	g := blank(t, 4, adjacency.Adjacent8)
	assert.Equal(t, 0.0, astar.Heuristic(g, 5, 5))
	assert.Equal(t, 1.0, astar.Heuristic(g, 0, 1))
	assert.Equal(t, 1.0, astar.Heuristic(g, 0, 4))
	assert.InDelta(t, math.Sqrt2, astar.Heuristic(g, 0, 5), 1e-12)
	assert.InDelta(t, math.Sqrt(13), astar.Heuristic(g, 0, 14), 1e-12) // (0,0)→(2,3)
	assert.InDelta(t, math.Hypot(3, 3), astar.Heuristic(g, 0, 15), 1e-12)
}

func TestPathCost(t *testing.T) {
	g := blank(t, 3, adjacency.Adjacent8)
	assert.Equal(t, 0.0, astar.PathCost(g, nil))
	assert.Equal(t, 0.0, astar.PathCost(g, []int{4}))
	assert.InDelta(t, 2+math.Sqrt2, astar.PathCost(g, []int{0, 1, 5, 8}), 1e-12)
	assert.InDelta(t, 2*math.Sqrt2, astar.PathCost(g, []int{0, 4, 8}), 1e-12)
}

// assertChain checks that consecutive cells of path are adjacent and open.
func assertChain(t *testing.T, g *gridgraph.Grid, path []int) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.Contains(t, g.Neighbors(path[i-1]), path[i], "step %d: %d→%d", i, path[i-1], path[i])
	}
}
