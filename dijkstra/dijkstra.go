package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Dijkstra computes shortest distances from the source cell to every
// reachable cell of g.
//
// Returns:
//
//   - dist: cell id → minimum cost. Unreachable cells (and walls) are absent.
//   - prev: predecessor map when WithReturnPath is set, nil otherwise.
//     prev[v] == u means the shortest path to v goes through u.
//   - err:  ErrNilGrid, ErrSourceOutOfRange or ErrSourceIsWall.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. Source (or the grid's start when Source is unset) must be in range.
//  3. Source must not be a wall.
func Dijkstra(g *gridgraph.Grid, opts ...Option) (map[int]float64, map[int]int, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, nil, ErrNilGrid
	}
	if cfg.Source == gridgraph.NoCell {
		cfg.Source, _ = g.StartID()
	}
	if !g.Contains(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %d (grid has %d cells)", ErrSourceOutOfRange, cfg.Source, g.Len())
	}
	if !g.Walkable(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %d", ErrSourceIsWall, cfg.Source)
	}

	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[int]float64, g.Len()),
		visited: make(map[int]bool, g.Len()),
		pq:      make(nodePQ, 0, g.Len()),
	}
	if cfg.ReturnPath {
		r.prev = make(map[int]int, g.Len())
	}
	r.init()
	r.process()

	// Tentative distances beyond the cap were never finalized.
	for id, d := range r.dist {
		if d > cfg.MaxDistance {
			delete(r.dist, id)
			if r.prev != nil {
				delete(r.prev, id)
			}
		}
	}

	return r.dist, r.prev, nil
}

// Path walks prev back from target to source and returns source..target.
// A target equal to source yields [source].
func Path(prev map[int]int, source, target int) ([]int, error) {
	if source == target {
		return []int{source}, nil
	}
	if _, ok := prev[target]; !ok {
		return nil, fmt.Errorf("%w: %d -> %d", ErrNoPath, source, target)
	}

	var rev []int
	for cur, steps := target, 0; ; steps++ {
		if steps > len(prev) {
			return nil, fmt.Errorf("%w: predecessor cycle at %d", ErrNoPath, cur)
		}
		rev = append(rev, cur)
		if cur == source {
			break
		}
		p, ok := prev[cur]
		if !ok {
			return nil, fmt.Errorf("%w: chain breaks at %d", ErrNoPath, cur)
		}
		cur = p
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *gridgraph.Grid // read-only within Dijkstra
	options Options
	dist    map[int]float64 // best known distance from Source
	prev    map[int]int     // predecessor on the shortest path; nil unless ReturnPath
	visited map[int]bool    // finalized cells
	pq      nodePQ
}

// init seeds the source at distance zero.
func (r *runner) init() {
	r.dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process pops cells in distance order until the heap drains or the cap is
// exceeded.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue // stale entry
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.id] = true
		r.relax(item.id)
	}
}

// relax tries to improve every walkable neighbor of u.
func (r *runner) relax(u int) {
	ux, uy := r.g.Coordinate(u)
	for _, v := range r.g.Neighbors(u) {
		if r.visited[v] {
			continue
		}
		vx, vy := r.g.Coordinate(v)
		newDist := r.dist[u] + math.Hypot(float64(ux-vx), float64(uy-vy))
		if old, ok := r.dist[v]; ok && newDist >= old {
			continue
		}
		r.dist[v] = newDist
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}
}

// nodeItem is a cell and its tentative distance.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties by id.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
