package engine

import "math"

// Layout maps between screen space and grid coordinates. Origin is the
// screen position of the centre of cell (0, 0); cells are CellW x CellH
// screen units. Screen y grows downward like row indices.
type Layout struct {
	OriginX float64
	OriginY float64
	CellW   float64
	CellH   float64
}

// ToGrid maps a screen point to (row, col) using
// round((screen - origin) / cellSize) per axis. The result is not
// bounds-checked; callers validate it with Grid.InBounds.
func (l Layout) ToGrid(x, y float64) (row, col int) {
	row = int(math.Round((y - l.OriginY) / l.CellH))
	col = int(math.Round((x - l.OriginX) / l.CellW))
	return row, col
}

// ToScreen returns the screen position of the centre of (row, col).
func (l Layout) ToScreen(row, col int) (x, y float64) {
	return l.OriginX + float64(col)*l.CellW, l.OriginY + float64(row)*l.CellH
}
