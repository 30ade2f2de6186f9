package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGestureIntent(t *testing.T) {
	tests := []struct {
		name    string
		press   Coord
		release Coord
		want    SwapIntent
		ok      bool
	}{
		{"right", C(3, 3), C(3, 4), SwapIntent{C(3, 3), DirRight}, true},
		{"left far", C(3, 3), C(3, 0), SwapIntent{C(3, 3), DirLeft}, true},
		{"down", C(1, 1), C(2, 1), SwapIntent{C(1, 1), DirDown}, true},
		{"up", C(4, 2), C(3, 2), SwapIntent{C(4, 2), DirUp}, true},
		{"dominant horizontal", C(2, 2), C(3, 5), SwapIntent{C(2, 2), DirRight}, true},
		{"tie goes vertical", C(2, 2), C(1, 1), SwapIntent{C(2, 2), DirUp}, true},
		{"no displacement", C(2, 2), C(2, 2), SwapIntent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Gesture{Press: tt.press, Release: tt.release}.Intent()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutToGrid(t *testing.T) {
	l := Layout{OriginX: 10, OriginY: 4, CellW: 4, CellH: 2}
	tests := []struct {
		x, y     float64
		row, col int
	}{
		{10, 4, 0, 0},
		{14, 6, 1, 1},
		{15.9, 6.9, 1, 1},
		{16, 7, 2, 2}, // halfway rounds away from zero
		{2, 0, -2, -2},
	}
	for _, tt := range tests {
		row, col := l.ToGrid(tt.x, tt.y)
		assert.Equal(t, tt.row, row, "row for (%v,%v)", tt.x, tt.y)
		assert.Equal(t, tt.col, col, "col for (%v,%v)", tt.x, tt.y)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{OriginX: 3, OriginY: 1, CellW: 5, CellH: 3}
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			x, y := l.ToScreen(r, c)
			gr, gc := l.ToGrid(x, y)
			assert.Equal(t, r, gr)
			assert.Equal(t, c, gc)
		}
	}
}

func TestIntervalAdvance(t *testing.T) {
	iv := NewInterval(300 * time.Millisecond)
	var fired []int
	for i := 1; i <= 7; i++ {
		if iv.Advance(100 * time.Millisecond) {
			fired = append(fired, i)
		}
	}
	assert.Equal(t, []int{3, 6}, fired)
	assert.Equal(t, 100*time.Millisecond, iv.Elapsed())

	iv.Reset()
	assert.Zero(t, iv.Elapsed())
}

func TestIntervalLargeDeltaFiresOnce(t *testing.T) {
	iv := NewInterval(100 * time.Millisecond)
	assert.True(t, iv.Advance(350*time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, iv.Elapsed())
}

func TestIntervalNonPositivePeriod(t *testing.T) {
	iv := NewInterval(0)
	assert.True(t, iv.Advance(0))
	assert.True(t, iv.Advance(time.Millisecond))
}
