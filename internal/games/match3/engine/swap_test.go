package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptSwapExchangesPieces(t *testing.T) {
	g := MustParseGrid("BP", "GY")
	h00, h01 := g.Handle(0, 0), g.Handle(0, 1)

	rec, err := AttemptSwap(g, C(0, 0), DirRight)
	require.NoError(t, err)

	assert.Equal(t, SwapRecord{Pos1: C(0, 0), Pos2: C(0, 1), Dir: DirRight}, rec)
	assert.Equal(t, "PB\nGY", g.String())
	assert.Equal(t, h01, g.Handle(0, 0))
	assert.Equal(t, h00, g.Handle(0, 1))
	require.NoError(t, g.Verify(), "pieces re-tagged to their new slot")
}

func TestAttemptSwapErrors(t *testing.T) {
	g := MustParseGrid("BP.", "GYB")
	tests := []struct {
		name string
		from Coord
		dir  Direction
		want error
	}{
		{"off right edge", C(1, 2), DirRight, ErrOutOfBounds},
		{"off top edge", C(0, 0), DirUp, ErrOutOfBounds},
		{"origin outside", C(5, 5), DirLeft, ErrOutOfBounds},
		{"no direction", C(0, 0), DirNone, ErrOutOfBounds},
		{"into empty", C(0, 1), DirRight, ErrEmptyCell},
		{"from empty", C(0, 2), DirDown, ErrEmptyCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.String()
			_, err := AttemptSwap(g, tt.from, tt.dir)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, g.String(), "grid untouched on error")
		})
	}
}

func TestSwapBackRestoresGrid(t *testing.T) {
	g := MustParseGrid("BBBP", "PGYG")
	require.Equal(t, 3, FlagMatches(g))

	beforePieces := g.Pieces()
	beforeHandles := append([]Handle(nil), g.handles...)

	for _, dir := range []Direction{DirDown, DirRight, DirLeft} {
		rec, err := AttemptSwap(g, C(0, 2), dir)
		require.NoError(t, err, dir.String())

		moved, ok := g.Cell(rec.Pos2.Row, rec.Pos2.Col)
		require.True(t, ok)
		assert.True(t, moved.Matched, "matched flag travels with the piece")

		back := rec.Inverse()
		assert.Equal(t, rec.Pos2, back.From)
		assert.Equal(t, dir.Inverse(), back.Dir)

		_, err = AttemptSwap(g, back.From, back.Dir)
		require.NoError(t, err)

		assert.Equal(t, beforePieces, g.Pieces(), "swap then inverse is identity (%s)", dir)
		assert.Equal(t, beforeHandles, g.handles)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		dir    Direction
		dr, dc int
		inv    Direction
	}{
		{DirUp, -1, 0, DirDown},
		{DirDown, 1, 0, DirUp},
		{DirLeft, 0, -1, DirRight},
		{DirRight, 0, 1, DirLeft},
		{DirNone, 0, 0, DirNone},
	}
	for _, tt := range tests {
		dr, dc := tt.dir.Delta()
		assert.Equal(t, tt.dr, dr, tt.dir.String())
		assert.Equal(t, tt.dc, dc, tt.dir.String())
		assert.Equal(t, tt.inv, tt.dir.Inverse())
	}

	assert.Equal(t, C(2, 4), SwapIntent{From: C(2, 3), Dir: DirRight}.To())
	assert.Equal(t, "(1,2)", C(1, 2).String())
}
