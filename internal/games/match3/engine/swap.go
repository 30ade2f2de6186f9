package engine

import "fmt"

// Coord addresses a grid cell.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Add returns the coordinate one step in direction d.
func (c Coord) Add(d Direction) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// String formats the coordinate as (row,col).
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is one of the four axis-aligned unit steps.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the (row, col) offset of the direction.
// Up decreases the row because row 0 is the top of the board.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// SwapIntent is a requested exchange of From with its neighbour in Dir.
type SwapIntent struct {
	From Coord
	Dir  Direction
}

// To returns the second endpoint of the intent.
func (i SwapIntent) To() Coord {
	return i.From.Add(i.Dir)
}

// SwapRecord describes a committed swap; it is enough to undo it.
type SwapRecord struct {
	Pos1 Coord
	Pos2 Coord
	Dir  Direction
}

// Inverse returns the intent that undoes this swap: start at Pos2 and step
// back toward Pos1.
func (r SwapRecord) Inverse() SwapIntent {
	return SwapIntent{From: r.Pos2, Dir: r.Dir.Inverse()}
}

// AttemptSwap exchanges the piece at pos1 with its neighbour in dir.
// Pieces and handles move together and each piece is re-tagged with its new
// slot. The same routine performs swap-backs via SwapRecord.Inverse.
func AttemptSwap(g *Grid, pos1 Coord, dir Direction) (SwapRecord, error) {
	if dir == DirNone {
		return SwapRecord{}, fmt.Errorf("attempt swap at %v: %w", pos1, ErrOutOfBounds)
	}
	pos2 := pos1.Add(dir)
	if !g.InBounds(pos1.Row, pos1.Col) || !g.InBounds(pos2.Row, pos2.Col) {
		return SwapRecord{}, fmt.Errorf("attempt swap %v->%v: %w", pos1, pos2, ErrOutOfBounds)
	}
	if !g.Filled(pos1.Row, pos1.Col) || !g.Filled(pos2.Row, pos2.Col) {
		return SwapRecord{}, fmt.Errorf("attempt swap %v->%v: %w", pos1, pos2, ErrEmptyCell)
	}

	g.exchange(pos1, pos2)
	return SwapRecord{Pos1: pos1, Pos2: pos2, Dir: dir}, nil
}
