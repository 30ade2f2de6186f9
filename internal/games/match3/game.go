// Package match3 adapts the match-3 rule engine to the arcade platform: it
// turns input frames into swap requests, drives the session clock from the
// platform tick and draws the board into a core.Screen.
package match3

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// GameMode selects who plays.
type GameMode int

const (
	ModeVsCPU GameMode = iota // Human against the automated opponent
	ModeSolo                  // Human only
	ModeWatch                 // Automated opponent plays alone
)

const (
	hudHeight = 3 // Rows above the board
	footer    = 2 // Rows below the board for status text

	fallRowsPerSecond = 12.0
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes engine debug logging for sessions started afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for the three match-3 variants.
type Game struct {
	mode GameMode

	runtime    core.RuntimeConfig
	cfg        config.Match3Config
	difficulty *config.DifficultyManager
	session    *engine.Session

	// Layout (computed from screen and board size)
	layout   engine.Layout
	boardX   int
	boardY   int
	boardW   int
	boardH   int
	tooSmall bool

	cursor   engine.Coord
	selected *engine.Coord
	paused   bool
	message  string
	ticks    int
	result   *core.MatchResult

	// Displayed row per piece handle, eased toward the real row.
	fall map[engine.Handle]float64
}

// New creates a human vs CPU game.
func New() *Game { return &Game{mode: ModeVsCPU} }

// NewSolo creates a single-player game.
func NewSolo() *Game { return &Game{mode: ModeSolo} }

// NewWatch creates a game where only the automated opponent plays.
func NewWatch() *Game { return &Game{mode: ModeWatch} }

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.mode {
	case ModeSolo:
		return "match3_solo"
	case ModeWatch:
		return "match3_watch"
	default:
		return "match3"
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case ModeSolo:
		return "Match-3 (Solo)"
	case ModeWatch:
		return "Match-3 (Watch)"
	default:
		return "Match-3 vs CPU"
	}
}

// EngineMode maps the game mode to the engine's session mode.
func (m GameMode) EngineMode() engine.Mode {
	switch m {
	case ModeSolo:
		return engine.ModeSolo
	case ModeWatch:
		return engine.ModeWatch
	default:
		return engine.ModeVsCPU
	}
}

// LoadConfig resolves the configuration the way Reset does: the configured
// path, then the difficulty preset.
func LoadConfig() config.Match3Config {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultMatch3Config()
	}
	if difficultyPreset != "" {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	return cfg
}

// SessionConfigFor converts a loaded configuration to an engine session config.
func SessionConfigFor(cfg config.Match3Config, mode engine.Mode, seed int64) (engine.SessionConfig, error) {
	palette, err := engine.ParsePalette(cfg.Board.Colors)
	if err != nil {
		return engine.SessionConfig{}, fmt.Errorf("match3: %w", err)
	}
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	start := engine.SideHuman
	if cfg.Match.StartingTurn == "cpu" {
		start = engine.SideAutomated
	}

	return engine.SessionConfig{
		Width:   cfg.Board.Width,
		Height:  cfg.Board.Height,
		Palette: palette,
		Seed:    seed,
		Timers: engine.Timers{
			Destroy:  ms(cfg.Timers.DestroyMs),
			Collapse: ms(cfg.Timers.CollapseMs),
			Refill:   ms(cfg.Timers.RefillMs),
			Opponent: ms(cfg.Timers.OpponentMs),
			SwapBack: ms(cfg.Timers.SwapBackMs),
		},
		Mode:           mode,
		StartingTurn:   start,
		AlternateTurns: cfg.Match.AlternateTurns,
		MovesPerSide:   cfg.Match.MovesPerSide,
		Logger:         logger,
	}, nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = LoadConfig()
	g.startSession(nil)
}

// startSession builds a session on grid, or on a generated board when grid
// is nil, and resets all per-game state.
func (g *Game) startSession(grid *engine.Grid) {
	sc, err := SessionConfigFor(g.cfg, g.mode.EngineMode(), g.runtime.Seed)
	if err != nil {
		logger.Warn("invalid palette, using defaults", "err", err)
		sc, _ = SessionConfigFor(config.DefaultMatch3Config(), g.mode.EngineMode(), g.runtime.Seed)
	}
	if grid != nil {
		g.session = engine.NewSessionWithGrid(sc, grid)
	} else {
		g.session = engine.NewSession(sc)
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.cursor = engine.C(0, 0)
	g.selected = nil
	g.paused = false
	g.message = ""
	g.ticks = 0
	g.result = nil

	g.calculateLayout()

	g.fall = make(map[engine.Handle]float64)
	for _, pv := range g.session.Snapshot().Pieces {
		g.fall[pv.Handle] = float64(pv.Row)
	}
}

// calculateLayout positions the board on screen and derives the
// screen-to-grid mapping from it.
func (g *Game) calculateLayout() {
	grid := g.session.Grid()
	cw, ch := g.cfg.Layout.CellWidth, g.cfg.Layout.CellHeight
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}

	g.boardW = grid.Width()*cw + 2 // +2 for borders
	g.boardH = grid.Height()*ch + 2
	g.tooSmall = g.runtime.ScreenW < g.boardW || g.runtime.ScreenH < g.boardH+hudHeight+footer

	if g.cfg.Layout.Origin == config.OriginTopLeft {
		g.boardX, g.boardY = 0, hudHeight
	} else {
		g.boardX = core.Max(0, (g.runtime.ScreenW-g.boardW)/2)
		g.boardY = hudHeight + core.Max(0, (g.runtime.ScreenH-hudHeight-footer-g.boardH)/2)
	}

	// Origin is the centre of cell (0, 0) inside the border.
	g.layout = engine.Layout{
		OriginX: float64(g.boardX+1) + float64(cw-1)/2,
		OriginY: float64(g.boardY+1) + float64(ch-1)/2,
		CellW:   float64(cw),
		CellH:   float64(ch),
	}
}

// Resize re-lays out the board for a new screen size, keeping the game.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	if g.session != nil {
		g.calculateLayout()
	}
}

// Session exposes the running engine session.
func (g *Game) Session() *engine.Session { return g.session }

// Snapshot returns the engine snapshot for determinism verification.
func (g *Game) Snapshot() engine.Snapshot { return g.session.Snapshot() }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	over, _ := g.session.GameOver()
	if over {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.mode != ModeWatch {
		g.handleKeys(in)
		g.handlePointer(in.Pointer)
	}

	if g.difficulty.IsEnabled() {
		base := time.Duration(g.cfg.Timers.OpponentMs) * time.Millisecond
		human := g.session.Tally(engine.SideHuman).Score
		g.session.SetOpponentPeriod(g.difficulty.OpponentInterval(base, human, g.ticks))
	}

	g.ticks++
	g.session.Tick(g.runtime.TickDuration())
	for _, ev := range g.session.Events() {
		g.onEvent(ev)
	}
	g.animate()

	return core.StepResult{State: g.State()}
}

// handleKeys moves the cursor and drives keyboard selection.
func (g *Game) handleKeys(in core.InputFrame) {
	grid := g.session.Grid()
	if in.Has(core.ActionUp) {
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, grid.Height()-1)
	}
	if in.Has(core.ActionDown) {
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, grid.Height()-1)
	}
	if in.Has(core.ActionLeft) {
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, grid.Width()-1)
	}
	if in.Has(core.ActionRight) {
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, grid.Width()-1)
	}
	if in.Has(core.ActionCancel) {
		g.selected = nil
	}
	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.selectCell(g.cursor)
	}
}

// selectCell picks up a piece, drops it again, or swaps it with the
// previously picked neighbour.
func (g *Game) selectCell(at engine.Coord) {
	if g.selected == nil {
		c := at
		g.selected = &c
		return
	}
	from := *g.selected
	g.selected = nil
	if from == at {
		return
	}

	intent, ok := engine.Gesture{Press: from, Release: at}.Intent()
	if !ok || intent.To() != at {
		// Not a neighbour: move the selection instead.
		c := at
		g.selected = &c
		return
	}
	g.request(intent)
}

// handlePointer turns press/release pairs into drags, and a release on the
// pressed cell into a click.
func (g *Game) handlePointer(events []core.PointerEvent) {
	grid := g.session.Grid()
	for _, ev := range events {
		row, col := g.layout.ToGrid(float64(ev.X), float64(ev.Y))
		switch ev.Kind {
		case core.PointerPress:
			g.session.Press(row, col)
			if grid.InBounds(row, col) {
				g.cursor = engine.C(row, col)
			}
		case core.PointerRelease:
			pressed, down := g.session.Pressed()
			swapped, err := g.session.Release(row, col)
			switch {
			case err != nil:
				g.report(err)
			case swapped:
				g.selected = nil
			case down && pressed == engine.C(row, col):
				g.selectCell(pressed)
			}
		}
	}
}

// request asks the session for a human swap and reports rejections.
func (g *Game) request(intent engine.SwapIntent) {
	if err := g.session.RequestSwap(engine.SideHuman, intent); err != nil {
		g.report(err)
		return
	}
	g.message = ""
}

func (g *Game) report(err error) {
	switch {
	case errors.Is(err, engine.ErrEmptyCell):
	case errors.Is(err, engine.ErrNotYourTurn):
		g.message = "Wait for your turn"
	case errors.Is(err, engine.ErrSwapInFlight), errors.Is(err, engine.ErrBoardBusy):
		g.message = "Board is still moving"
	case errors.Is(err, engine.ErrOutOfBounds):
		g.message = "Off the board"
	default:
		g.message = err.Error()
	}
}

// onEvent updates the status line and the match result from engine events.
func (g *Game) onEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventSwapBack:
		g.message = "No match, swapping back"
	case engine.EventOpponentMove:
		g.message = fmt.Sprintf("CPU swaps %v %s", ev.Intent.From, ev.Intent.Dir)
	case engine.EventScored:
		if ev.Side == engine.SideHuman {
			g.message = "Match!"
		}
	case engine.EventGameOver:
		g.message = ""
		g.result = g.matchResult(ev.Reason)
	}
}

// matchResult summarises a finished vs-CPU game; other modes have none.
func (g *Game) matchResult(reason string) *core.MatchResult {
	if g.mode != ModeVsCPU {
		return nil
	}
	human := g.session.Tally(engine.SideHuman)
	cpu := g.session.Tally(engine.SideAutomated)
	res := &core.MatchResult{
		HumanScore:    human.Score,
		OpponentScore: cpu.Score,
		HumanMoves:    human.Moves,
		OpponentMoves: cpu.Moves,
		Reason:        reason,
		Duration:      time.Duration(g.ticks) * g.runtime.TickDuration(),
	}
	if side, ok := g.session.Winner(); ok {
		res.Winner = "human"
		if side == engine.SideAutomated {
			res.Winner = "cpu"
		}
	}
	return res
}

// animate eases every displayed piece toward its grid row. Pieces that
// appeared this tick start above the board, stacked in arrival order.
func (g *Game) animate() {
	step := fallRowsPerSecond * g.runtime.TickDuration().Seconds()
	pieces := g.session.Snapshot().Pieces

	spawned := make(map[int]int) // column -> new pieces in it
	for _, pv := range pieces {
		if _, ok := g.fall[pv.Handle]; !ok {
			spawned[pv.Col]++
		}
	}

	next := make(map[engine.Handle]float64, len(pieces))
	for _, pv := range pieces {
		target := float64(pv.Row)
		cur, ok := g.fall[pv.Handle]
		if !ok {
			cur = target - float64(spawned[pv.Col])
		}
		if cur < target {
			cur += step
		}
		if cur > target {
			cur = target
		}
		next[pv.Handle] = cur
	}
	g.fall = next
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	over, _ := g.session.GameOver()
	side := engine.SideHuman
	if g.mode == ModeWatch {
		side = engine.SideAutomated
	}
	return core.GameState{
		Score:    g.session.Tally(side).Score,
		GameOver: over,
		Paused:   g.paused,
		Match:    g.result,
	}
}

func init() {
	registry.Register("match3", func() registry.Game { return New() })
	registry.Register("match3_solo", func() registry.Game { return NewSolo() })
	registry.Register("match3_watch", func() registry.Game { return NewWatch() })
}
