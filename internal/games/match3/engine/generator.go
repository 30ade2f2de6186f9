package engine

import (
	"math/rand"
)

// IntNSource is the part of *rand.Rand the generator needs. Tests can inject
// a scripted source.
type IntNSource interface {
	Intn(n int) int
}

// GeneratorStats counts noteworthy placement outcomes.
type GeneratorStats struct {
	Placed    int // Pieces placed
	Redraws   int // First draw would have matched; drew again from the reduced palette
	Fallbacks int // Reduced palette was empty (ErrNoCandidateColor); kept the first draw
}

// Generator fills boards and refills holes without creating immediate matches.
type Generator struct {
	rng     IntNSource
	palette Palette
	stats   GeneratorStats
}

// NewGenerator creates a generator over the given palette.
// A nil rng gets a seeded *rand.Rand; an empty palette gets DefaultPalette.
func NewGenerator(rng IntNSource, palette Palette) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Generator{rng: rng, palette: palette}
}

// Palette returns the generator's palette.
func (gen *Generator) Palette() Palette {
	return gen.palette
}

// Stats returns placement counters since creation.
func (gen *Generator) Stats() GeneratorStats {
	return gen.stats
}

// Generate builds a fully populated width x height board in row-major order.
// With at least three colors no cell is part of a run when it returns.
func (gen *Generator) Generate(width, height int) *Grid {
	g := NewGrid(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			g.Place(r, c, gen.PickColor(g, r, c))
			gen.stats.Placed++
		}
	}
	return g
}

// PickColor chooses a color for the empty cell (row, col).
//
// It draws uniformly from the palette. When the drawn color would complete a
// 3-window with the neighbours already on the board, it draws once more from
// the palette minus every such color. If nothing is left the first draw is
// kept.
func (gen *Generator) PickColor(g *Grid, row, col int) Color {
	first := gen.palette[gen.rng.Intn(len(gen.palette))]
	forbidden := forbiddenColors(g, row, col)
	if !containsColor(forbidden, first) {
		return first
	}

	reduced := gen.palette.Without(forbidden...)
	if len(reduced) == 0 {
		gen.stats.Fallbacks++
		return first
	}
	gen.stats.Redraws++
	return reduced[gen.rng.Intn(len(reduced))]
}

// Refill spawns pieces into every eligible column and returns the filled
// coordinates. A column is eligible when its entry cell (row 0) is empty;
// only the empty run at the top of the column is filled, holes further down
// are left for the collapse phase. Cells are filled bottom-up so the lowest
// slot receives the first piece.
func (gen *Generator) Refill(g *Grid) []Coord {
	var spawned []Coord
	for c := 0; c < g.width; c++ {
		if g.Filled(0, c) {
			continue
		}
		top := 0
		for top < g.height && !g.Filled(top, c) {
			top++
		}
		for r := top - 1; r >= 0; r-- {
			g.Place(r, c, gen.PickColor(g, r, c))
			gen.stats.Placed++
			spawned = append(spawned, Coord{Row: r, Col: c})
		}
	}
	return spawned
}

// forbiddenColors lists the colors that would put (row, col) inside a
// 3-window given the filled neighbours. Initial generation only ever sees
// the two cells to the left and the two above; refill can also see pieces
// to the right and below.
func forbiddenColors(g *Grid, row, col int) []Color {
	var out []Color
	add := func(a, b Coord) {
		ca := g.ColorAt(a.Row, a.Col)
		if ca == ColorNone || ca != g.ColorAt(b.Row, b.Col) || containsColor(out, ca) {
			return
		}
		out = append(out, ca)
	}
	add(C(row, col-1), C(row, col-2))
	add(C(row, col+1), C(row, col+2))
	add(C(row, col-1), C(row, col+1))
	add(C(row-1, col), C(row-2, col))
	add(C(row+1, col), C(row+2, col))
	add(C(row-1, col), C(row+1, col))
	return out
}

func containsColor(list []Color, c Color) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}
