package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// CellWidth is the number of terminal columns per grid cell.
const CellWidth = 2

// Cell colours.
var (
	ColorOpen    = tcell.ColorWhite
	ColorWall    = tcell.NewRGBColor(125, 125, 125)
	ColorStart   = tcell.ColorBlue
	ColorTarget  = tcell.ColorRed
	ColorVisited = tcell.ColorYellow
	ColorPath    = tcell.NewRGBColor(51, 221, 51)
)

// StyleFor returns the style a cell in state s is drawn with.
func StyleFor(s gridgraph.State) tcell.Style {
	base := tcell.StyleDefault.Foreground(tcell.ColorBlack)
	switch s {
	case gridgraph.Wall:
		return base.Background(ColorWall)
	case gridgraph.Start:
		return base.Background(ColorStart).Foreground(tcell.ColorWhite).Bold(true)
	case gridgraph.Target:
		return base.Background(ColorTarget).Foreground(tcell.ColorWhite).Bold(true)
	case gridgraph.Visited:
		return base.Background(ColorVisited)
	case gridgraph.OnPath:
		return base.Background(ColorPath)
	default:
		return base.Background(ColorOpen)
	}
}

// glyphsFor returns the two runes drawn for a cell. Endpoints carry a letter
// so they stay readable without colour.
func glyphsFor(s gridgraph.State) [CellWidth]rune {
	switch s {
	case gridgraph.Start:
		return [CellWidth]rune{'S', ' '}
	case gridgraph.Target:
		return [CellWidth]rune{'T', ' '}
	default:
		return [CellWidth]rune{' ', ' '}
	}
}
