// Package astar implements an incremental, cancellable A* search over a
// gridgraph.Grid.
//
// Overview:
//
//   - New validates the endpoints and seeds the search state: gScore[start]=0
//     and start pushed onto the frontier with priority h(start, target).
//   - Step performs exactly one pop-and-expand cycle and returns control, so a
//     host can render the frontier and closed set between steps, pace the run,
//     or stop it.
//   - Cancel aborts a run cooperatively between steps.
//   - Search drives Step to completion for callers that do not need the
//     intermediate states.
//
// State machine:
//
//	Ready ──Step──▶ Running ──Step──▶ Found | Exhausted
//	  │                │
//	  └────Cancel──────┴──────▶ Cancelled
//
// Calling Step or Cancel in a terminal state returns ErrInvalidState. All
// search state (closed set, frontier, cameFrom, g/f scores) belongs to one
// Engine for one run and is released when the run ends; only the final path,
// cost and counters survive.
//
// Costs:
//
// The heuristic is the Euclidean distance between cell coordinates and is
// also used as the edge cost between adjacent cells: orthogonal moves cost 1,
// diagonal moves √2. The heuristic is therefore admissible and consistent for
// both topologies and the returned path is optimal.
//
// Relaxation:
//
// For every non-wall neighbor n of the expanded cell c,
// tentative = g(c) + h(c, n). A closed neighbor is skipped unless tentative is
// strictly smaller than its g. Otherwise, if n is not queued or tentative
// improves g(n), cameFrom, g and f are updated and n is pushed or its
// priority lowered. g-scores therefore only ever decrease strictly.
//
// Determinism:
//
// Neighbor order is fixed by the adjacency package and frontier ties are
// broken by insertion order, so identical inputs give identical runs.
//
// Concurrency:
//
// An Engine is not safe for concurrent use. Independent engines may share a
// grid as long as nobody mutates its walls during the runs.
package astar
