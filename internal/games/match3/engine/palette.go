// Package engine implements the match-3 rule engine: the board, swaps, match
// detection, gravity collapse, refill and the automated opponent. It has no
// terminal or Bubble Tea dependencies so it can be driven and tested headless.
package engine

import (
	"fmt"
	"strings"
)

// Color is the symbolic color of a piece. Matching only compares colors.
type Color uint8

// Piece colors. The zero value is reserved so an unset Color is detectable.
const (
	ColorNone Color = iota
	ColorBlue
	ColorPink
	ColorGreen
	ColorYellow
)

// String returns the lower-case color name.
func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorPink:
		return "pink"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	default:
		return "none"
	}
}

// Rune returns a single-letter tag used by text renderers and tests.
func (c Color) Rune() rune {
	switch c {
	case ColorBlue:
		return 'B'
	case ColorPink:
		return 'P'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	default:
		return '.'
	}
}

// ParseColor converts a name ("blue") or a tag ("B") to a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue", "b":
		return ColorBlue, nil
	case "pink", "p":
		return ColorPink, nil
	case "green", "g":
		return ColorGreen, nil
	case "yellow", "y":
		return ColorYellow, nil
	}
	return ColorNone, fmt.Errorf("engine: unknown color %q", s)
}

// Palette is the alphabet the generator draws from.
type Palette []Color

// DefaultPalette is the four-color palette of the classic board.
var DefaultPalette = Palette{ColorBlue, ColorPink, ColorGreen, ColorYellow}

// ParsePalette builds a palette from color names, rejecting duplicates.
func ParsePalette(names []string) (Palette, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("engine: empty palette")
	}
	p := make(Palette, 0, len(names))
	for _, n := range names {
		c, err := ParseColor(n)
		if err != nil {
			return nil, err
		}
		if p.Contains(c) {
			return nil, fmt.Errorf("engine: duplicate color %q in palette", n)
		}
		p = append(p, c)
	}
	return p, nil
}

// Contains reports whether c is part of the palette.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Without returns a copy of the palette with the given colors removed.
// The receiver is never modified.
func (p Palette) Without(exclude ...Color) Palette {
	out := make(Palette, 0, len(p))
	for _, c := range p {
		skip := false
		for _, e := range exclude {
			if c == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}
