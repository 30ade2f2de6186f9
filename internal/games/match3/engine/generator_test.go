package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed Intn results, wrapping modulo n.
type scripted struct {
	vals []int
	i    int
}

func (s *scripted) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestGenerateHasNoMatches(t *testing.T) {
	sizes := []struct{ w, h int }{{7, 7}, {8, 5}, {3, 3}, {1, 9}, {12, 12}}

	for seed := int64(0); seed < 200; seed++ {
		for _, sz := range sizes {
			gen := NewGenerator(rand.New(rand.NewSource(seed)), DefaultPalette)
			g := gen.Generate(sz.w, sz.h)

			require.Equal(t, 0, g.EmptyCount())
			require.NoError(t, g.Verify())
			require.Empty(t, Scan(g), "seed %d %dx%d:\n%s", seed, sz.w, sz.h, g)
			assert.Zero(t, gen.Stats().Fallbacks, "four colors always leave a candidate")
			assert.Equal(t, sz.w*sz.h, gen.Stats().Placed)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(42)), DefaultPalette).Generate(7, 7)
	b := NewGenerator(rand.New(rand.NewSource(42)), DefaultPalette).Generate(7, 7)
	assert.Equal(t, a.String(), b.String())
}

func TestPickColorRedrawsFromReducedPalette(t *testing.T) {
	g := MustParseGrid("BB.")
	// First draw is blue (completes BB_), second draw indexes {P, G, Y}.
	gen := NewGenerator(&scripted{vals: []int{0, 0}}, DefaultPalette)

	assert.Equal(t, ColorPink, gen.PickColor(g, 0, 2))
	assert.Equal(t, GeneratorStats{Redraws: 1}, gen.Stats())
}

func TestPickColorKeepsSafeFirstDraw(t *testing.T) {
	g := MustParseGrid("BB.")
	gen := NewGenerator(&scripted{vals: []int{2}}, DefaultPalette)

	assert.Equal(t, ColorGreen, gen.PickColor(g, 0, 2))
	assert.Equal(t, GeneratorStats{}, gen.Stats())
}

func TestPickColorFallsBackWhenEveryColorMatches(t *testing.T) {
	g := MustParseGrid(
		"..P",
		"..P",
		"BB.",
	)
	gen := NewGenerator(&scripted{vals: []int{0}}, Palette{ColorBlue, ColorPink})

	assert.Equal(t, ColorBlue, gen.PickColor(g, 2, 2), "first draw kept")
	assert.Equal(t, GeneratorStats{Fallbacks: 1}, gen.Stats())
}

func TestForbiddenColorsSeesEveryNeighbourPair(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		at   Coord
		want []Color
	}{
		{"left pair", []string{"GG."}, C(0, 2), []Color{ColorGreen}},
		{"right pair", []string{".YY"}, C(0, 0), []Color{ColorYellow}},
		{"horizontal split", []string{"P.P"}, C(0, 1), []Color{ColorPink}},
		{"up pair", []string{"B", "B", "."}, C(2, 0), []Color{ColorBlue}},
		{"down pair", []string{".", "G", "G"}, C(0, 0), []Color{ColorGreen}},
		{"vertical split", []string{"Y", ".", "Y"}, C(1, 0), []Color{ColorYellow}},
		{"mixed pair", []string{"GB."}, C(0, 2), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustParseGrid(tt.rows...)
			assert.Equal(t, tt.want, forbiddenColors(g, tt.at.Row, tt.at.Col))
		})
	}
}

func TestRefillOnlyEligibleColumns(t *testing.T) {
	g := MustParseGrid(
		".G.",
		"..B",
		"BY.",
		"PBP",
	)
	gen := NewGenerator(rand.New(rand.NewSource(1)), DefaultPalette)

	spawned := gen.Refill(g)

	assert.Equal(t, []Coord{C(1, 0), C(0, 0), C(0, 2)}, spawned, "bottom-up per column")
	assert.True(t, g.Filled(0, 0))
	assert.True(t, g.Filled(1, 0))
	assert.False(t, g.Filled(1, 1), "column with a filled entry cell is not eligible")
	assert.False(t, g.Filled(2, 2), "holes below a filled cell are left for collapse")
	for _, c := range spawned {
		assert.False(t, g.Handle(c.Row, c.Col).IsZero())
	}
	require.NoError(t, g.Verify())
}

func TestRefillLeavesLowerHolesForCollapse(t *testing.T) {
	g := MustParseGrid(
		".GB",
		"BPG",
		"YBP",
		".GY",
	)
	gen := NewGenerator(rand.New(rand.NewSource(1)), DefaultPalette)

	spawned := gen.Refill(g)

	assert.Equal(t, []Coord{C(0, 0)}, spawned)
	assert.False(t, g.Filled(3, 0), "hole under filled cells waits for collapse")
	assert.Equal(t, 1, g.EmptyCount())
	require.NoError(t, g.Verify())
}

func TestRefillAvoidsMatches(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		gen := NewGenerator(rand.New(rand.NewSource(seed)), DefaultPalette)
		g := gen.Generate(7, 7)

		// Knock out the top of a few columns, as destroy plus collapse would.
		rng := rand.New(rand.NewSource(seed + 1000))
		for c := 0; c < 7; c++ {
			depth := rng.Intn(4)
			for r := 0; r < depth; r++ {
				g.Clear(r, c)
			}
		}

		before := gen.Stats().Fallbacks
		gen.Refill(g)

		require.Equal(t, 0, g.EmptyCount())
		require.NoError(t, g.Verify())
		if gen.Stats().Fallbacks == before {
			assert.Empty(t, Scan(g), "seed %d:\n%s", seed, g)
		}
	}
}
