// Package gridgraph models the square cell grid a path search runs over.
//
// What:
//
//   - Grid owns rowCount² Cells addressed by row-major ids (id = y*rowCount + x).
//   - Each Cell has a fixed id and (x, y) coordinate plus a mutable State.
//   - Only Wall affects traversal; Start, Target, Visited and OnPath are overlays
//     used by renderers.
//   - At most one Start and one Target exist at any time; assigning a new one
//     resets the previous holder to Open.
//   - Neighbors delegates to the adjacency package and drops Wall cells.
//   - ConnectedComponents and Reachable find open regions (BFS), useful to
//     reason about whether a search can succeed at all.
//
// Editing:
//
// SetStart, SetTarget, SetWall, Clear, Cycle (Open→Wall→Start→Target→Open) and
// Paint (Open↔Wall) are meant for UI collaborators. A Grid is not safe for
// concurrent mutation; while a search is running callers must either stop
// editing or hand the engine a Clone.
//
// Text layout:
//
// Parse builds a grid from rows of glyphs and String renders one back:
//
//	. open   # wall   S start   T target   o visited   * path
//
// Complexity:
//
//   - CellAt, CellAtXY, Index, Coordinate: O(1).
//   - Neighbors: O(d), d = 4 or 8.
//   - ConnectedComponents, Reachable: O(N·d), N = rowCount².
//
// Errors:
//
//   - ErrEmptyGrid: non-positive size or empty layout.
//   - ErrNonSquare: layout rows do not form a square.
//   - ErrBadGlyph: unknown layout character.
//   - ErrDuplicateEndpoint: layout has more than one S or T.
//   - ErrOutOfRange: id or coordinate outside the grid.
//   - ErrBadOverlay: Mark called with a non-overlay state or on a wall/endpoint.
package gridgraph
