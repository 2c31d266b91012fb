package gridgraph

// ConnectedComponents finds all contiguous regions of non-wall cells
// according to the grid topology.
// Returns a slice of components; each component is a slice of cell ids in BFS
// order, components ordered by their smallest id.
//
// Time:   O(N·d), N = rowCount², d = 4 or 8.
// Memory: O(N) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]int {
	seen := make([]bool, len(g.cells))
	var comps [][]int
	for id := range g.cells {
		if seen[id] || g.cells[id].State == Wall {
			continue
		}
		comps = append(comps, g.flood(id, seen))
	}

	return comps
}

// Reachable returns the non-wall cells reachable from id (including id) in
// BFS order. A wall or out-of-range id yields nil.
//
// Time: O(N·d). Memory: O(N).
func (g *Grid) Reachable(id int) []int {
	if !g.Walkable(id) {
		return nil
	}

	return g.flood(id, make([]bool, len(g.cells)))
}

// Connected reports whether a and b are in the same open component.
func (g *Grid) Connected(a, b int) bool {
	if !g.Walkable(a) || !g.Walkable(b) {
		return false
	}
	for _, id := range g.Reachable(a) {
		if id == b {
			return true
		}
	}

	return false
}

// flood runs a BFS from id over non-wall cells, marking seen.
func (g *Grid) flood(id int, seen []bool) []int {
	queue := []int{id}
	seen[id] = true
	for qi := 0; qi < len(queue); qi++ {
		for _, nb := range g.Neighbors(queue[qi]) {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	return queue
}
