package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func TestScoreboardShowsScoresAndMatches(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("fake", 7); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	if _, err := store.SaveMatch(storage.MatchRecord{
		GameID: "fake", HumanScore: 7, CPUScore: 4, Winner: storage.WinnerHuman, Reason: "out of moves",
	}); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	view := ansiSeq.ReplaceAllString(m.View(), "")
	for _, want := range []string{"HIGH SCORES - Fake", "#1", "7", "vs CPU: 1 won, 0 lost, 0 drawn"} {
		if !strings.Contains(view, want) {
			t.Errorf("scores view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(keyMsg("m"))
	m = next.(ScoreboardModel)
	view = ansiSeq.ReplaceAllString(m.View(), "")
	for _, want := range []string{"MATCH HISTORY", "won", "out of moves"} {
		if !strings.Contains(view, want) {
			t.Errorf("matches view missing %q:\n%s", want, view)
		}
	}

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || next.View() != "" {
		t.Error("q should quit the scoreboard")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet.") {
		t.Errorf("view = %q", view)
	}
}

func TestResultLabel(t *testing.T) {
	tests := map[string]string{
		storage.WinnerHuman: "won",
		storage.WinnerCPU:   "lost",
		storage.WinnerDraw:  "draw",
	}
	for winner, want := range tests {
		if got := ResultLabel(winner); got != want {
			t.Errorf("ResultLabel(%q) = %q, want %q", winner, got, want)
		}
	}
}
