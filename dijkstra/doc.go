// Package dijkstra implements an uninformed single-source shortest-path
// solver over a gridgraph.Grid.
//
// It exists as a reference for the astar package: both use the same edge cost
// (Euclidean distance between adjacent cells), so on any grid the A* path cost
// must equal dist[target] computed here.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Each cell is finalized at most once: V extractions from the heap.
//   - Each relaxation may push a new heap entry: up to E pushes.
//   - Space: O(V + E)
//   - O(V) for the distance and predecessor maps.
//   - O(E) worst-case heap entries under lazy decrease-key.
//
// Notes on implementation choices:
//
//   - Walls are never entered; the grid's Neighbors already filters them.
//   - Exploration stops once the minimum distance in the heap exceeds MaxDistance.
//   - Lazy decrease-key: duplicates are pushed and stale entries skipped on pop.
package dijkstra
