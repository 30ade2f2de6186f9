package engine

// Piece is the rule-engine value stored in a grid cell.
// Row and Col always equal the index of the cell holding the piece; the swap
// engine re-tags them when it exchanges two slots.
type Piece struct {
	Row     int
	Col     int
	Color   Color
	Matched bool // Set by match flagging, cleared by destroy or collapse
}

// NewPiece creates an unmatched piece at the given coordinates.
func NewPiece(row, col int, color Color) Piece {
	return Piece{Row: row, Col: col, Color: color}
}

// At returns the piece's coordinate.
func (p Piece) At() Coord {
	return Coord{Row: p.Row, Col: p.Col}
}
