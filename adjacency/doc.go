// Package adjacency defines the neighbor-inclusion rules (topologies) used to
// walk a square grid of cells addressed by row-major integer ids.
//
// What:
//
//   - Topology is a tagged enum with two cases: Adjacent4 (N, W, E, S) and
//     Adjacent8 (the four orthogonal moves plus the four diagonals).
//   - Neighbors maps (topology, id, totalCells, rowCount) to the in-bounds
//     neighbor ids. It is a pure function: no I/O, no state, no allocation
//     beyond the returned slice.
//
// Row boundaries:
//
// Neighbors works on coordinates (x = id % rowCount, y = id / rowCount), so a
// cell on the left edge never reports id-1 as its "west" neighbor even though
// that id is numerically valid. Every direction, including each diagonal, is
// checked independently.
//
//	Adjacent4:        Adjacent8:
//
//	 - | N | -         NW | N | NE
//	 W | O | E          W | O | E
//	 - | S | -         SW | S | SE
//
// Order:
//
// Results are always produced in the fixed order N, W, E, S, NW, NE, SW, SE
// (diagonals only for Adjacent8), which keeps downstream searches
// deterministic.
//
// Complexity: O(d) per call, d = 4 or 8.
//
// Wall filtering is not done here; gridgraph.Grid.Neighbors layers it on top.
package adjacency
