package engine

// windowAt reports whether (row, col) is the centre of a horizontal or
// vertical 3-window of filled cells sharing its color.
func windowAt(g *Grid, row, col int) (horizontal, vertical bool) {
	color := g.ColorAt(row, col)
	if color == ColorNone {
		return false, false
	}
	horizontal = g.ColorAt(row, col-1) == color && g.ColorAt(row, col+1) == color
	vertical = g.ColorAt(row-1, col) == color && g.ColorAt(row+1, col) == color
	return horizontal, vertical
}

// IsMatchedAt reports whether the piece at (row, col) belongs to any 3-window,
// whether as its centre or as one of its ends. Out-of-range cells are never
// matched. The grid is not modified, so this is safe on hypothetical clones.
func IsMatchedAt(g *Grid, row, col int) bool {
	if !g.Filled(row, col) {
		return false
	}
	if h, v := windowAt(g, row, col); h || v {
		return true
	}
	// A window centred on a neighbour always contains this cell's color.
	if h, _ := windowAt(g, row, col-1); h {
		return true
	}
	if h, _ := windowAt(g, row, col+1); h {
		return true
	}
	if _, v := windowAt(g, row-1, col); v {
		return true
	}
	_, v := windowAt(g, row+1, col)
	return v
}

// Scan returns every cell that is part of a run of three or more, in
// row-major order. Only centred 3-windows are evaluated; longer runs are
// covered because each interior cell is the centre of its own window.
func Scan(g *Grid) []Coord {
	marked := make([]bool, g.width*g.height)
	mark := func(row, col int) { marked[row*g.width+col] = true }

	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			h, v := windowAt(g, r, c)
			if h {
				mark(r, c-1)
				mark(r, c)
				mark(r, c+1)
			}
			if v {
				mark(r-1, c)
				mark(r, c)
				mark(r+1, c)
			}
		}
	}

	var out []Coord
	for i, m := range marked {
		if m {
			out = append(out, Coord{Row: i / g.width, Col: i % g.width})
		}
	}
	return out
}

// FlagMatches sets Matched on every piece found by Scan and returns the
// number of newly flagged pieces. Flagged pieces stay on the board until the
// destroy phase removes them.
func FlagMatches(g *Grid) int {
	n := 0
	for _, c := range Scan(g) {
		if p := g.pieces[c.Row*g.width+c.Col]; p != nil && !p.Matched {
			p.Matched = true
			n++
		}
	}
	return n
}

// HasMatched reports whether any piece on the board is flagged.
func HasMatched(g *Grid) bool {
	for _, p := range g.pieces {
		if p != nil && p.Matched {
			return true
		}
	}
	return false
}

// hasRuns reports whether any piece is flagged or still forms an unflagged
// run, as after a collapse that lined pieces up.
func hasRuns(g *Grid) bool {
	return HasMatched(g) || len(Scan(g)) > 0
}
