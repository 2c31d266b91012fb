// Package pathviz is an incremental A* pathfinding engine for square grids,
// with a terminal visualiser around it.
//
// The search runs one expansion per Step, so a host can draw the frontier,
// the closed set and the live best path after every step, pace the run, or
// cancel it part-way.
//
// Packages:
//
//	adjacency/ : 4- and 8-directional neighbor arithmetic on row-major ids
//	gridgraph/ : the grid model: cells, walls, start/target, editing, components
//	pqueue/    : generic min-priority queue with decrease-key
//	astar/     : the step-wise A* engine and its state machine
//	dijkstra/  : uninformed reference solver used to check A* optimality
//	runner/    : paced stepping host with observers and Prometheus metrics
//	config/    : YAML configuration and logger setup
//	render/    : tcell renderer and grid editor
//	cmd/pathviz: the `solve` and `view` commands
//
// Quick start:
//
//	g, _ := gridgraph.Parse([]string{
//		"S..#",
//		".#..",
//		"...#",
//		"#..T",
//	}, gridgraph.WithTopology(adjacency.Adjacent8))
//	res, err := astar.Search(ctx, g, 0, 15)
//
// Costs are Euclidean: 1 per orthogonal move and √2 per diagonal move, and the
// same distance serves as the heuristic, so returned paths are optimal.
package pathviz
