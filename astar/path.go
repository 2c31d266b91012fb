package astar

import (
	"math"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Heuristic returns the Euclidean distance between cells a and b of g.
// The same value is the edge cost between adjacent cells: 1 for an
// orthogonal step and √2 for a diagonal one.
func Heuristic(g *gridgraph.Grid, a, b int) float64 {
	ax, ay := g.Coordinate(a)
	bx, by := g.Coordinate(b)

	return math.Hypot(float64(ax-bx), float64(ay-by))
}

// Heuristic is the package-level Heuristic bound to the engine's grid.
func (e *Engine) Heuristic(a, b int) float64 {
	return Heuristic(e.grid, a, b)
}

// PathCost sums the edge costs along path. Paths shorter than two cells cost 0.
func PathCost(g *gridgraph.Grid, path []int) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += Heuristic(g, path[i-1], path[i])
	}

	return total
}

// PathTo follows cameFrom back from id and returns the cells start..id.
// A cell with no recorded predecessor yields just [id] (or [start] for the
// start cell itself). After the run has ended only the found path is
// available: PathTo(target) returns it and every other id yields nil.
func (e *Engine) PathTo(id int) []int {
	if e.cameFrom == nil {
		if e.status == Found && id == e.target {
			out := make([]int, len(e.path))
			copy(out, e.path)
			return out
		}
		return nil
	}

	var rev []int
	seen := make(map[int]struct{})
	for cur := id; ; {
		if _, loop := seen[cur]; loop {
			// cameFrom is acyclic by construction; bail rather than spin.
			break
		}
		seen[cur] = struct{}{}
		rev = append(rev, cur)
		prev, ok := e.cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}

	path := make([]int, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}

	return path
}
