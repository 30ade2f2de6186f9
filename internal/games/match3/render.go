package match3

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Glyphs differ per color so the board reads without color too.
var glyphs = map[engine.Color]rune{
	engine.ColorBlue:   '◆',
	engine.ColorPink:   '♥',
	engine.ColorGreen:  '♣',
	engine.ColorYellow: '★',
}

var colors = map[engine.Color][2]core.Color{ // normal, matched
	engine.ColorBlue:   {core.ColorBlue, core.ColorBrightBlue},
	engine.ColorPink:   {core.ColorMagenta, core.ColorBrightMagenta},
	engine.ColorGreen:  {core.ColorGreen, core.ColorBrightGreen},
	engine.ColorYellow: {core.ColorYellow, core.ColorBrightYellow},
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(core.NewRect(g.boardX, g.boardY, g.boardW, g.boardH), g.frameColor())
	g.renderPieces(dst)
	g.renderMarkers(dst)
	g.renderFooter(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.boardW, g.boardH+hudHeight+footer))
}

// frameColor shows whose turn it is.
func (g *Game) frameColor() core.Color {
	if over, _ := g.session.GameOver(); over {
		return core.ColorGray
	}
	if g.session.Turn() == engine.SideHuman {
		return core.ColorCyan
	}
	return core.ColorRed
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawStyledText((dst.Width()-len([]rune(g.Title())))/2, 0, g.Title(), core.ColorBrightWhite, true)

	human := g.session.Tally(engine.SideHuman)
	cpu := g.session.Tally(engine.SideAutomated)
	limit := g.session.Config().MovesPerSide

	var line string
	switch g.mode {
	case ModeSolo:
		line = fmt.Sprintf("Score %d   Moves %s", human.Score, movesText(human.Moves, limit))
	case ModeWatch:
		line = fmt.Sprintf("CPU %d   Moves %s", cpu.Score, movesText(cpu.Moves, limit))
	default:
		line = fmt.Sprintf("You %d (%s)   CPU %d (%s)",
			human.Score, movesText(human.Moves, limit),
			cpu.Score, movesText(cpu.Moves, limit))
	}
	dst.DrawTextCentered(1, line)

	status := "Phase: " + g.session.Phase().String()
	if g.mode == ModeVsCPU {
		turn := "You"
		if g.session.Turn() == engine.SideAutomated {
			turn = "CPU"
		}
		status = "Turn: " + turn + "   " + status
	}
	dst.DrawStyledText((dst.Width()-len([]rune(status)))/2, 2, status, core.ColorGray, false)
}

func movesText(used, limit int) string {
	if limit <= 0 {
		return fmt.Sprintf("%d", used)
	}
	return fmt.Sprintf("%d/%d", used, limit)
}

// cellOrigin returns the top-left screen position of a cell's interior.
func (g *Game) cellOrigin(row float64, col int) (int, int) {
	cw, ch := int(g.layout.CellW), int(g.layout.CellH)
	x := g.boardX + 1 + col*cw
	y := g.boardY + 1 + int(math.Round(row*float64(ch)))
	return x, y
}

// renderPieces fills each piece's cell, leaving a one-column gap on the left
// and a one-row gap at the bottom when the cell is large enough.
func (g *Game) renderPieces(dst *core.Screen) {
	cw, ch := int(g.layout.CellW), int(g.layout.CellH)
	gapX, gapY := 0, 0
	if cw > 1 {
		gapX = 1
	}
	if ch > 1 {
		gapY = 1
	}

	top := g.boardY + 1
	for _, pv := range g.session.Snapshot().Pieces {
		row, ok := g.fall[pv.Handle]
		if !ok {
			row = float64(pv.Row)
		}
		x, y := g.cellOrigin(row, pv.Col)

		palette := colors[pv.Color]
		cell := core.Cell{Rune: glyphs[pv.Color], Color: palette[0]}
		if pv.Matched {
			cell.Color = palette[1]
			cell.Bold = true
		}
		for dy := 0; dy < ch-gapY; dy++ {
			if y+dy < top {
				continue
			}
			for dx := gapX; dx < cw; dx++ {
				dst.SetCell(x+dx, y+dy, cell)
			}
		}
	}
}

// renderMarkers draws the cursor and the picked-up piece in the gap column.
func (g *Game) renderMarkers(dst *core.Screen) {
	if g.mode == ModeWatch {
		return
	}
	if g.selected != nil {
		x, y := g.cellOrigin(float64(g.selected.Row), g.selected.Col)
		dst.SetCell(x, y, core.Cell{Rune: '*', Color: core.ColorBrightYellow, Bold: true})
	}
	if g.selected == nil || *g.selected != g.cursor {
		x, y := g.cellOrigin(float64(g.cursor.Row), g.cursor.Col)
		dst.SetCell(x, y, core.Cell{Rune: '>', Color: core.ColorBrightWhite, Bold: true})
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.boardY + g.boardH

	if over, reason := g.session.GameOver(); over {
		dst.DrawStyledText((dst.Width()-len([]rune(g.outcome())))/2, y, g.outcome(), core.ColorBrightYellow, true)
		hint := fmt.Sprintf("Game over: %s. Press R to play again", reason)
		dst.DrawTextCentered(y+1, hint)
		return
	}
	if g.paused {
		dst.DrawStyledText((dst.Width()-len("PAUSED"))/2, y, "PAUSED", core.ColorBrightWhite, true)
		return
	}
	if g.message != "" {
		dst.DrawTextCentered(y, g.message)
	}
}

// outcome is the headline shown when the game ends.
func (g *Game) outcome() string {
	if g.mode != ModeVsCPU {
		return fmt.Sprintf("Final score %d", g.State().Score)
	}
	side, ok := g.session.Winner()
	switch {
	case !ok:
		return "Draw!"
	case side == engine.SideHuman:
		return "You win!"
	default:
		return "CPU wins!"
	}
}
