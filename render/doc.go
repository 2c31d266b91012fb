// Package render draws a gridgraph.Grid on a terminal with tcell and turns
// keyboard and mouse input into grid edits.
//
// Every grid cell occupies CellWidth terminal columns and one row, starting at
// the renderer origin. Colours follow the classic visualiser: open white, wall
// grey, start blue, target red, visited yellow, path green.
//
// Renderer implements runner.Observer, so a paced run animates directly: each
// step turns the previous live path back into visited cells, marks the
// expanded cell visited and paints the new live path. The final path replaces
// the live one when the run is found.
//
// Renderer and Editor share one mutex, so a run may report steps from its own
// goroutine while the UI goroutine handles input.
package render
