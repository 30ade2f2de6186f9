package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("cell (%d,%d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(6, 3)
	want := Cell{Rune: '●', Color: ColorMagenta, Bold: true}

	s.SetCell(2, 1, want)
	if got := s.GetCell(2, 1); got != want {
		t.Errorf("GetCell = %+v, want %+v", got, want)
	}
	if got := s.Get(2, 1); got != '●' {
		t.Errorf("Get = %q, want '●'", got)
	}

	// Writes outside the screen are dropped without panicking.
	s.SetCell(-1, 0, want)
	s.SetCell(6, 0, want)
	s.Set(0, 3, 'x')
	if s.GetCell(-1, 0) != (Cell{Rune: ' '}) {
		t.Error("out-of-bounds GetCell should be blank")
	}
}

func TestScreenDrawStyledText(t *testing.T) {
	tests := []struct {
		name  string
		x     int
		text  string
		row   string
		color Color
	}{
		{"inside", 1, "Score", " Score    ", ColorYellow},
		{"clipped right", 7, "Moves", "       Mov", ColorGreen},
		{"clipped left", -2, "Turn", "rn        ", ColorCyan},
		{"multibyte", 0, "◆◆", "◆◆        ", ColorBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			s.DrawStyledText(tt.x, 0, tt.text, tt.color, false)
			if got := s.Row(0); got != tt.row {
				t.Errorf("Row(0) = %q, want %q", got, tt.row)
			}
			for x := 0; x < s.Width(); x++ {
				c := s.GetCell(x, 0)
				if c.Rune != ' ' && c.Color != tt.color {
					t.Errorf("cell %d color = %v, want %v", x, c.Color, tt.color)
				}
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "GAME")
	if got := s.Row(0); got != "   GAME    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	want := "┌────┐\n│    │\n│    │\n└────┘"
	if got := s.String(); got != want {
		t.Errorf("box =\n%s\nwant\n%s", got, want)
	}
	if c := s.GetCell(0, 0); c.Color != ColorGray {
		t.Errorf("corner color = %v, want gray", c.Color)
	}
	if c := s.GetCell(2, 2); c.Rune != ' ' {
		t.Errorf("interior = %q, want space", c.Rune)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawStyledText(0, 0, "abcd", ColorRed, true)
	s.Clear()
	if got := s.String(); got != "    \n    " {
		t.Errorf("after Clear = %q", got)
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawStyledText(0, 0, "Hello", ColorBlue, false)

	s.Resize(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hell" {
		t.Errorf("Row(0) = %q, want %q", got, "Hell")
	}

	s.Resize(8, 3)
	if got := s.Row(0); !strings.HasPrefix(got, "Hell ") {
		t.Errorf("Row(0) after growing = %q", got)
	}
	if c := s.GetCell(0, 0); c.Color != ColorBlue {
		t.Errorf("style lost on resize: %+v", c)
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, want blanks", got)
	}
}
