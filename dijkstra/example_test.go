package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/pathviz/dijkstra"
	"github.com/katalvlaran/pathviz/gridgraph"
)

// ExampleDijkstra routes around a wall on a 4-connected grid.
func ExampleDijkstra() {
	g, err := gridgraph.Parse([]string{
		"S#.",
		".#.",
		"..T",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.WithReturnPath())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	path, _ := dijkstra.Path(prev, 0, 8)
	fmt.Printf("dist=%.0f path=%v\n", dist[8], path)
	// Output: dist=4 path=[0 3 6 7 8]
}
