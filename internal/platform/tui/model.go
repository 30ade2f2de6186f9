package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the help bar.
const helpHeight = 1

// Resizer is implemented by games that can re-layout without restarting.
type Resizer interface {
	Resize(width, height int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	started    time.Time
	quitting   bool
	back       bool // Left the finished or paused game
	saved      bool // Results of the current game over were stored
	lastShot   string
}

// NewModel creates a new Bubble Tea model for the given game. cfg describes
// the whole terminal; the game gets it minus the help bar.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = core.Max(1, cfg.ScreenH-helpHeight)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       h,
		started:    time.Now(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := Pointer(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.lastShot = m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.back = true
			return m, tea.Quit
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize re-lays out the game, restarting it when it cannot resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	w, h := msg.Width, core.Max(1, msg.Height-helpHeight)
	if w == m.config.ScreenW && h == m.config.ScreenH {
		return m, nil
	}
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)
	m.help.Width = w

	if r, ok := m.game.(Resizer); ok {
		r.Resize(w, h)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.started = time.Now()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.saveResults()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResults stores the score and, for two-sided games, the match.
// Storage is best-effort: a failing database never stops the game.
func (m *Model) saveResults() {
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		//nolint:errcheck // Best-effort save
		m.store.SaveScore(m.game.ID(), m.gameState.Score)
	}
	if res := m.gameState.Match; res != nil {
		//nolint:errcheck // Best-effort save
		m.store.SaveMatch(MatchRecordFrom(m.game.ID(), res))
	}
}

// MatchRecordFrom converts a finished game's result into a storage record.
func MatchRecordFrom(gameID string, res *core.MatchResult) storage.MatchRecord {
	return storage.MatchRecord{
		GameID:     gameID,
		HumanScore: res.HumanScore,
		CPUScore:   res.OpponentScore,
		HumanMoves: res.HumanMoves,
		CPUMoves:   res.OpponentMoves,
		Winner:     res.Winner,
		Reason:     res.Reason,
		Duration:   int(res.Duration.Round(time.Second).Seconds()),
	}
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m *Model) saveScreenshot() string {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return ""
	}
	return path
}

var (
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fullHelp     = lipgloss.NewStyle().Padding(1, 2)
)

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user left the game with the back key.
func (m Model) BackToMenu() bool { return m.back }

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}
	if m.help.ShowAll {
		return fullHelp.Render(m.help.View(m.keys))
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	bar := m.help.View(m.keys)
	if m.lastShot != "" {
		bar += "  saved " + filepath.Base(m.lastShot)
	}
	return RenderScreen(m.screen) + "\n" + helpBarStyle.Render(bar)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
