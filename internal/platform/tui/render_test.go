package tui

import (
	"regexp"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawText(0, 0, "ab")
	s.DrawStyledText(2, 0, "◆◆", core.ColorBlue, false)
	s.DrawStyledText(4, 0, "♥", core.ColorMagenta, true)
	s.SetCell(0, 1, core.Cell{Rune: '>', Color: core.Color(200)}) // unknown color

	got := ansiSeq.ReplaceAllString(RenderScreen(s), "")
	want := "ab◆◆♥   \n>       "
	if got != want {
		t.Errorf("RenderScreen text = %q, want %q", got, want)
	}
}
