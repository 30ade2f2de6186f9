package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Handle is an opaque presentation reference owned 1:1 with a piece.
// The engine stores and moves handles but never interprets them; renderers
// use them to keep per-piece animation state across moves.
type Handle uuid.UUID

// NewHandle mints a random handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// IsZero reports whether h is the empty handle.
func (h Handle) IsZero() bool {
	return h == Handle(uuid.Nil)
}

// String returns the canonical UUID form.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Grid is the board: width x height cells of optional pieces plus a parallel
// board of presentation handles. A cell holds a piece if and only if it holds
// a handle. Row 0 is the top row; gravity pulls toward row height-1.
type Grid struct {
	width   int
	height  int
	pieces  []*Piece // nil means empty
	handles []Handle // zero means none

	newHandle func() Handle
}

// NewGrid creates an empty grid. Dimensions must be positive.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:     width,
		height:    height,
		pieces:    make([]*Piece, width*height),
		handles:   make([]Handle, width*height),
		newHandle: NewHandle,
	}
}

// ParseGrid builds a grid from rows of color tags ("BPGY"), '.' for empty.
// All rows must have the same length.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("engine: no rows")
	}
	width := len(rows[0])
	g := NewGrid(width, len(rows))
	for r, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", r, len(line), width)
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			color, err := ParseColor(string(ch))
			if err != nil {
				return nil, fmt.Errorf("engine: row %d col %d: %w", r, c, err)
			}
			g.Place(r, c, color)
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid that panics on error, for fixtures.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// SetHandleSource replaces the handle minting function (tests use it for
// deterministic handles).
func (g *Grid) SetHandleSource(f func() Handle) {
	if f != nil {
		g.newHandle = f
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// index converts a coordinate to a flat row-major index, panicking when out
// of range.
func (g *Grid) index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", row, col, g.width, g.height))
	}
	return row*g.width + col
}

// Cell returns the piece at (row, col) and whether the cell is filled.
// Out-of-range coordinates are a caller error and panic.
func (g *Grid) Cell(row, col int) (Piece, bool) {
	p := g.pieces[g.index(row, col)]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Filled reports whether (row, col) holds a piece. Out of range is false.
func (g *Grid) Filled(row, col int) bool {
	return g.InBounds(row, col) && g.pieces[row*g.width+col] != nil
}

// ColorAt returns the color at (row, col), or ColorNone for empty or
// out-of-range cells.
func (g *Grid) ColorAt(row, col int) Color {
	if !g.Filled(row, col) {
		return ColorNone
	}
	return g.pieces[row*g.width+col].Color
}

// Handle returns the presentation handle at (row, col).
func (g *Grid) Handle(row, col int) Handle {
	return g.handles[g.index(row, col)]
}

// Place puts a new unmatched piece with a fresh handle into an empty cell and
// returns the handle. Placing over a filled cell panics.
func (g *Grid) Place(row, col int, color Color) Handle {
	i := g.index(row, col)
	if g.pieces[i] != nil {
		panic(fmt.Sprintf("engine: place into filled cell (%d,%d)", row, col))
	}
	p := NewPiece(row, col, color)
	h := g.newHandle()
	g.pieces[i] = &p
	g.handles[i] = h
	return h
}

// Clear empties (row, col), returning the removed piece and handle.
func (g *Grid) Clear(row, col int) (Piece, Handle, bool) {
	i := g.index(row, col)
	p := g.pieces[i]
	if p == nil {
		return Piece{}, Handle{}, false
	}
	h := g.handles[i]
	g.pieces[i] = nil
	g.handles[i] = Handle{}
	return *p, h, true
}

// Move transfers the piece and handle at from into the empty cell to,
// re-tagging coordinates and clearing the matched flag.
func (g *Grid) Move(from, to Coord) bool {
	fi := g.index(from.Row, from.Col)
	ti := g.index(to.Row, to.Col)
	if g.pieces[fi] == nil || g.pieces[ti] != nil {
		return false
	}
	p := *g.pieces[fi]
	p.Row, p.Col = to.Row, to.Col
	p.Matched = false
	g.pieces[ti] = &p
	g.handles[ti] = g.handles[fi]
	g.pieces[fi] = nil
	g.handles[fi] = Handle{}
	return true
}

// exchange swaps the contents of two cells. Both pieces are re-tagged to
// their new slot; handles travel with the pieces.
func (g *Grid) exchange(a, b Coord) {
	ai := g.index(a.Row, a.Col)
	bi := g.index(b.Row, b.Col)
	g.pieces[ai], g.pieces[bi] = g.pieces[bi], g.pieces[ai]
	g.handles[ai], g.handles[bi] = g.handles[bi], g.handles[ai]
	if p := g.pieces[ai]; p != nil {
		p.Row, p.Col = a.Row, a.Col
	}
	if p := g.pieces[bi]; p != nil {
		p.Row, p.Col = b.Row, b.Col
	}
}

// Clone returns a deep copy. Mutating the copy never touches the receiver.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:     g.width,
		height:    g.height,
		pieces:    make([]*Piece, len(g.pieces)),
		handles:   make([]Handle, len(g.handles)),
		newHandle: g.newHandle,
	}
	for i, p := range g.pieces {
		if p != nil {
			cp := *p
			c.pieces[i] = &cp
		}
	}
	copy(c.handles, g.handles)
	return c
}

// Pieces returns a copy of every piece in row-major order.
func (g *Grid) Pieces() []Piece {
	out := make([]Piece, 0, len(g.pieces))
	for _, p := range g.pieces {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, p := range g.pieces {
		if p == nil {
			n++
		}
	}
	return n
}

// Verify checks the grid invariants: pieces and handles in lock-step and
// every piece tagged with its own index.
func (g *Grid) Verify() error {
	for i, p := range g.pieces {
		row, col := i/g.width, i%g.width
		hasHandle := !g.handles[i].IsZero()
		switch {
		case p == nil && hasHandle:
			return fmt.Errorf("engine: cell (%d,%d) has a handle but no piece", row, col)
		case p != nil && !hasHandle:
			return fmt.Errorf("engine: cell (%d,%d) has a piece but no handle", row, col)
		case p != nil && (p.Row != row || p.Col != col):
			return fmt.Errorf("engine: piece at (%d,%d) tagged (%d,%d)", row, col, p.Row, p.Col)
		}
	}
	return nil
}

// String renders the grid as rows of color tags, '.' for empty cells and
// lower-case tags for matched pieces.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for r := 0; r < g.height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.width; c++ {
			p := g.pieces[r*g.width+c]
			switch {
			case p == nil:
				sb.WriteByte('.')
			case p.Matched:
				sb.WriteRune(p.Color.Rune() + ('a' - 'A'))
			default:
				sb.WriteRune(p.Color.Rune())
			}
		}
	}
	return sb.String()
}
