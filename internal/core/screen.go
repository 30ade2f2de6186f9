package core

import "strings"

// Cell is one character of the screen with its style.
type Cell struct {
	Rune  rune
	Color Color
	Bold  bool
}

var blank = Cell{Rune: ' '}

// Screen is a character buffer games draw into. The platform turns it into
// styled terminal output, so games never touch the terminal directly.
type Screen struct {
	width  int
	height int
	cells  []Cell // Row-major
}

// NewScreen creates a blank screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height}
	s.cells = make([]Cell, width*height)
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Resize changes the dimensions, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	old := s
	next := NewScreen(width, height)
	for y := 0; y < Min(old.height, height); y++ {
		for x := 0; x < Min(old.width, width); x++ {
			next.cells[y*width+x] = old.cells[y*old.width+x]
		}
	}
	*s = *next
}

// Clear resets every cell to an unstyled space.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Set places an unstyled rune. Out-of-bounds writes are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places a styled cell. Out-of-bounds writes are dropped.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = c
}

// Get returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// DrawText writes text starting at (x, y), clipped at the edges.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawStyledText(x, y, text, ColorDefault, false)
}

// DrawStyledText writes text in one color.
func (s *Screen) DrawStyledText(x, y int, text string, color Color, bold bool) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Color: color, Bold: bold})
		i++
	}
}

// DrawTextCentered writes text centred horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.width-len([]rune(text)))/2, y, text)
}

// DrawBox outlines r with box-drawing characters in the given color.
func (s *Screen) DrawBox(r Rect, color Color) {
	edge := func(x, y int, ch rune) { s.SetCell(x, y, Cell{Rune: ch, Color: color}) }
	for x := r.X + 1; x < r.Right()-1; x++ {
		edge(x, r.Y, '─')
		edge(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		edge(r.X, y, '│')
		edge(r.Right()-1, y, '│')
	}
	edge(r.X, r.Y, '┌')
	edge(r.Right()-1, r.Y, '┐')
	edge(r.X, r.Bottom()-1, '└')
	edge(r.Right()-1, r.Bottom()-1, '┘')
}

// String returns the plain text of the screen, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns row y as plain text; rows outside the screen are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x := range runes {
		runes[x] = s.cells[y*s.width+x].Rune
	}
	return string(runes)
}
