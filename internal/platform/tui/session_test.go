package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

// pick moves the menu cursor to gameID and selects it.
func pick(t *testing.T, m SessionModel, gameID string) SessionModel {
	t.Helper()
	for i, g := range registry.List() {
		if g.ID != gameID {
			continue
		}
		for j := 0; j < i; j++ {
			m, _ = sessionUpdate(t, m, keyMsg("down"))
		}
		m, _ = sessionUpdate(t, m, keyMsg("enter"))
		return m
	}
	t.Fatalf("game %q not registered", gameID)
	return m
}

func TestSessionSelectsEveryMode(t *testing.T) {
	for _, id := range []string{"match3", "match3_solo", "match3_watch"} {
		t.Run(id, func(t *testing.T) {
			m := pick(t, newTestSession(t, nil), id)

			if m.screen != screenGame {
				t.Fatalf("screen = %v, want game", m.screen)
			}
			if got := m.game.game.ID(); got != id {
				t.Errorf("started %q, want %q", got, id)
			}

			m, cmd := sessionUpdate(t, m, TickMsg(time.Now()))
			if cmd == nil {
				t.Error("game ticks should keep running")
			}
			if m.quitting || m.View() == "" {
				t.Error("session should still be showing the game")
			}
		})
	}
}

func TestSessionBackReturnsToMenu(t *testing.T) {
	m := pick(t, newTestSession(t, nil), "fake")
	g, ok := m.game.game.(*fakeGame)
	if !ok {
		t.Fatalf("game is %T", m.game.game)
	}

	g.state.GameOver = true
	m, _ = sessionUpdate(t, m, TickMsg(time.Now()))
	m, _ = sessionUpdate(t, m, keyMsg("b"))

	if m.screen != screenMenu || m.quitting {
		t.Fatalf("screen = %v quitting = %v, want menu", m.screen, m.quitting)
	}

	// A tick already in flight must not restart anything.
	m, cmd := sessionUpdate(t, m, TickMsg(time.Now()))
	if cmd != nil || m.screen != screenMenu {
		t.Error("stray tick changed the menu")
	}
	if !strings.Contains(m.View(), "Pick a mode") {
		t.Errorf("menu view = %q", m.View())
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	m := pick(t, newTestSession(t, nil), "fake")

	m, cmd := sessionUpdate(t, m, keyMsg("q"))
	if cmd == nil || !m.quitting || m.View() != "" {
		t.Error("q in game should end the session")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newTestSession(t, nil)

	m, _ = sessionUpdate(t, m, keyMsg("tab"))
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Errorf("scoreboard view = %q", m.View())
	}

	m, _ = sessionUpdate(t, m, keyMsg("esc"))
	if m.screen != screenMenu || m.quitting {
		t.Fatal("esc should return to the menu")
	}

	m, cmd := sessionUpdate(t, m, keyMsg("q"))
	if cmd == nil || !m.quitting {
		t.Error("q on the menu should end the session")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := pick(t, newTestSession(t, nil), "fake")
	g := m.game.game.(*fakeGame)

	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != [2]int{100, 40 - helpHeight} {
		t.Errorf("game resized to %v", g.resized)
	}
	if m.config.ScreenW != 100 || m.config.ScreenH != 40 {
		t.Errorf("session config = %+v", m.config)
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore("fake", 9); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	view := ansiSeq.ReplaceAllString(NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}).View(), "")
	for _, want := range []string{"M A T C H - 3", "> Fake  (best 9)", "Match-3 vs CPU", "Match-3 (Solo)", "Match-3 (Watch)"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q:\n%s", want, view)
		}
	}
}
