package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"blue", ColorBlue},
		{"P", ColorPink},
		{" Green ", ColorGreen},
		{"y", ColorYellow},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseColor("red")
	assert.Error(t, err)
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"blue", "pink", "green"})
	require.NoError(t, err)
	assert.Equal(t, Palette{ColorBlue, ColorPink, ColorGreen}, p)

	_, err = ParsePalette([]string{"blue", "b"})
	assert.Error(t, err, "duplicate")

	_, err = ParsePalette(nil)
	assert.Error(t, err, "empty")
}

func TestPaletteWithout(t *testing.T) {
	p := DefaultPalette
	got := p.Without(ColorPink, ColorYellow)

	assert.Equal(t, Palette{ColorBlue, ColorGreen}, got)
	assert.Equal(t, Palette{ColorBlue, ColorPink, ColorGreen, ColorYellow}, p, "receiver untouched")
	assert.Empty(t, Palette{ColorBlue}.Without(ColorBlue))
}

func TestColorRuneAndString(t *testing.T) {
	for _, c := range DefaultPalette {
		back, err := ParseColor(string(c.Rune()))
		require.NoError(t, err)
		assert.Equal(t, c, back)

		back, err = ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
	assert.Equal(t, '.', ColorNone.Rune())
}
