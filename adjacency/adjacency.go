package adjacency

// Offset is a (dx, dy) step from a cell to one of its neighbors.
type Offset [2]int

var (
	// orthogonal offsets in N, W, E, S order.
	orthogonal = [...]Offset{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	// diagonal offsets in NW, NE, SW, SE order.
	diagonal = [...]Offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
)

// Offsets returns the neighbor offsets for t in canonical order.
// The returned slice is a fresh copy and may be modified by the caller.
// Unknown topologies yield nil.
func Offsets(t Topology) []Offset {
	switch t {
	case Adjacent4:
		out := make([]Offset, 0, len(orthogonal))
		return append(out, orthogonal[:]...)
	case Adjacent8:
		out := make([]Offset, 0, len(orthogonal)+len(diagonal))
		out = append(out, orthogonal[:]...)
		return append(out, diagonal[:]...)
	default:
		return nil
	}
}

// Degree returns the maximum number of neighbors a cell can have under t.
func Degree(t Topology) int {
	switch t {
	case Adjacent4:
		return len(orthogonal)
	case Adjacent8:
		return len(orthogonal) + len(diagonal)
	default:
		return 0
	}
}

// Neighbors returns the ids adjacent to id under topology t on a grid of
// totalCells cells laid out row-major with rowCount cells per row.
//
// Only in-bounds ids are returned, each direction checked against both the
// row boundaries and the first/last row, so there is no wraparound.
// Corner cells yield 2 (Adjacent4) or 3 (Adjacent8) ids, edge cells 3 or 5.
//
// nil is returned when id is out of range, when the dimensions are not
// positive, when totalCells is not a whole number of rows, or when t is unknown.
//
// Complexity: O(d), d = Degree(t).
func Neighbors(t Topology, id, totalCells, rowCount int) []int {
	if rowCount <= 0 || totalCells <= 0 || totalCells%rowCount != 0 {
		return nil
	}
	if id < 0 || id >= totalCells {
		return nil
	}

	var offsets []Offset
	switch t {
	case Adjacent4:
		offsets = orthogonal[:]
	case Adjacent8:
		offsets = append(orthogonal[:len(orthogonal):len(orthogonal)], diagonal[:]...)
	default:
		return nil
	}

	rows := totalCells / rowCount
	x, y := id%rowCount, id/rowCount
	ids := make([]int, 0, len(offsets))
	for _, d := range offsets {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= rowCount || ny < 0 || ny >= rows {
			continue
		}
		ids = append(ids, ny*rowCount+nx)
	}

	return ids
}
