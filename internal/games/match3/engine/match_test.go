package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []Coord
	}{
		{
			name: "no runs",
			rows: []string{"BPG", "PGB", "GBP"},
			want: nil,
		},
		{
			name: "horizontal triple",
			rows: []string{"BBBP", "PGYG"},
			want: []Coord{C(0, 0), C(0, 1), C(0, 2)},
		},
		{
			name: "vertical triple",
			rows: []string{"GB", "GP", "GY"},
			want: []Coord{C(0, 0), C(1, 0), C(2, 0)},
		},
		{
			name: "run of four",
			rows: []string{"YYYY"},
			want: []Coord{C(0, 0), C(0, 1), C(0, 2), C(0, 3)},
		},
		{
			name: "cross",
			rows: []string{"PBP", "BBB", "GBG"},
			want: []Coord{C(0, 1), C(1, 0), C(1, 1), C(1, 2), C(2, 1)},
		},
		{
			name: "gap breaks run",
			rows: []string{"BB.B", "PGYG"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustParseGrid(tt.rows...)
			assert.Equal(t, tt.want, Scan(g))
		})
	}
}

func TestIsMatchedAt(t *testing.T) {
	g := MustParseGrid(
		"BBBP",
		"GPYP",
		"GYGP",
		"G.YB",
	)
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},  // left end
		{0, 1, true},  // centre
		{0, 2, true},  // right end
		{0, 3, true},  // top of vertical P run
		{2, 3, true},  // bottom of vertical P run
		{1, 0, true},  // G column
		{3, 0, true},  // G column end
		{1, 2, false}, // Y with no partner
		{3, 1, false}, // empty
		{3, 3, false},
		{-1, 0, false},
		{0, 4, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMatchedAt(g, tt.row, tt.col), "IsMatchedAt(%d,%d)", tt.row, tt.col)
	}
}

func TestFlagMatches(t *testing.T) {
	g := MustParseGrid("BBBP", "PGYG")

	assert.Equal(t, 3, FlagMatches(g))
	assert.True(t, HasMatched(g))
	assert.Equal(t, 0, FlagMatches(g), "already flagged pieces are not counted again")
	assert.Equal(t, 0, g.EmptyCount(), "flagging never destroys")
}

// bruteRuns marks every cell that belongs to a straight run of three or more.
func bruteRuns(g *Grid) map[Coord]bool {
	out := map[Coord]bool{}
	mark := func(cells []Coord) {
		if len(cells) >= 3 {
			for _, c := range cells {
				out[c] = true
			}
		}
	}
	for r := 0; r < g.Height(); r++ {
		var run []Coord
		for c := 0; c < g.Width(); c++ {
			if len(run) > 0 && g.ColorAt(r, c) != ColorNone && g.ColorAt(r, c) == g.ColorAt(run[0].Row, run[0].Col) {
				run = append(run, C(r, c))
				continue
			}
			mark(run)
			run = nil
			if g.Filled(r, c) {
				run = []Coord{C(r, c)}
			}
		}
		mark(run)
	}
	for c := 0; c < g.Width(); c++ {
		var run []Coord
		for r := 0; r < g.Height(); r++ {
			if len(run) > 0 && g.ColorAt(r, c) != ColorNone && g.ColorAt(r, c) == g.ColorAt(run[0].Row, run[0].Col) {
				run = append(run, C(r, c))
				continue
			}
			mark(run)
			run = nil
			if g.Filled(r, c) {
				run = []Coord{C(r, c)}
			}
		}
		mark(run)
	}
	return out
}

func TestScanFlagsExactlyTheRuns(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	palette := Palette{ColorBlue, ColorPink, ColorGreen}

	for i := 0; i < 300; i++ {
		g := NewGrid(6, 6)
		for r := 0; r < 6; r++ {
			for c := 0; c < 6; c++ {
				if rng.Intn(8) == 0 {
					continue
				}
				g.Place(r, c, palette[rng.Intn(len(palette))])
			}
		}

		want := bruteRuns(g)
		got := Scan(g)
		require.Len(t, got, len(want), "board:\n%s", g)
		for _, c := range got {
			assert.True(t, want[c], "%v flagged outside a run:\n%s", c, g)
			assert.True(t, IsMatchedAt(g, c.Row, c.Col), "%v:\n%s", c, g)
		}
	}
}
