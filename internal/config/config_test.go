package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	var cfg Match3Config
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if want := DefaultMatch3Config(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults drifted:\n got %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	partial := "board:\n  width: 9\n  colors: [blue, green, pink]\nmatch:\n  starting_turn: cpu\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	if cfg.Board.Width != 9 || cfg.Board.Height != 7 {
		t.Errorf("board = %dx%d, want 9x7 (height from defaults)", cfg.Board.Width, cfg.Board.Height)
	}
	if !reflect.DeepEqual(cfg.Board.Colors, []string{"blue", "green", "pink"}) {
		t.Errorf("colors = %v", cfg.Board.Colors)
	}
	if cfg.Match.StartingTurn != "cpu" || cfg.Timers.DestroyMs != 800 {
		t.Errorf("unexpected merge result: %+v", cfg)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("board: [unclosed"), 0o644)
	if _, err := LoadMatch3(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("board:\n  width: 2\n"), 0o644)
	if _, err := LoadMatch3(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestLoadMatch3SearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	if cfg.Board.Width != 7 {
		t.Errorf("without overrides width = %d, want embedded 7", cfg.Board.Width)
	}

	userDir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(userDir, "match3.yaml"), []byte("board:\n  height: 8\n"), 0o644)

	cfg, err = LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	if cfg.Board.Height != 8 {
		t.Errorf("user config ignored: height = %d", cfg.Board.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
		ok     bool
	}{
		{"defaults", func(*Match3Config) {}, true},
		{"narrow board", func(c *Match3Config) { c.Board.Width = 2 }, false},
		{"one color", func(c *Match3Config) { c.Board.Colors = []string{"blue"} }, false},
		{"two colors", func(c *Match3Config) { c.Board.Colors = []string{"blue", "pink"} }, false},
		{"three colors", func(c *Match3Config) { c.Board.Colors = []string{"blue", "pink", "green"} }, true},
		{"unknown color", func(c *Match3Config) { c.Board.Colors = []string{"blue", "pink", "teal"} }, false},
		{"duplicate color", func(c *Match3Config) { c.Board.Colors = []string{"blue", "pink", "Blue"} }, false},
		{"zero timer", func(c *Match3Config) { c.Timers.RefillMs = 0 }, false},
		{"negative moves", func(c *Match3Config) { c.Match.MovesPerSide = -1 }, false},
		{"unlimited moves", func(c *Match3Config) { c.Match.MovesPerSide = 0 }, true},
		{"bad starting turn", func(c *Match3Config) { c.Match.StartingTurn = "both" }, false},
		{"cpu starts", func(c *Match3Config) { c.Match.StartingTurn = "cpu" }, true},
		{"zero cell", func(c *Match3Config) { c.Layout.CellWidth = 0 }, false},
		{"bad origin", func(c *Match3Config) { c.Layout.Origin = "middle" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		level      float64
		opponentMs int
	}{
		{DifficultyEasy, true, 0.0, 4000},
		{DifficultyNormal, true, 0.3, 3000},
		{DifficultyHard, true, 0.7, 1500},
		{DifficultyFixed, false, 0.0, 3000},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultMatch3Config()
			ApplyMatch3Preset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("initial level = %v, want %v", cfg.Difficulty.InitialLevel, tt.level)
			}
			if cfg.Timers.OpponentMs != tt.opponentMs {
				t.Errorf("opponent_ms = %d, want %d", cfg.Timers.OpponentMs, tt.opponentMs)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for in, want := range map[string]DifficultyPreset{"": DifficultyNormal, "HARD": DifficultyHard, "fixed": DifficultyFixed} {
		got, err := ParsePreset(in)
		if err != nil || got != want {
			t.Errorf("ParsePreset(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestOpponentInterval(t *testing.T) {
	base := 3 * time.Second
	scoring := DefaultMatch3Config().Difficulty

	tests := []struct {
		name  string
		cfg   DifficultyConfig
		base  time.Duration
		score int
		want  time.Duration
	}{
		{"start of game", scoring, base, 0, 3 * time.Second},
		{"half way", scoring, base, 10, 2250 * time.Millisecond},
		{"max level", scoring, base, 20, 1500 * time.Millisecond},
		{"past max", scoring, base, 99, 1500 * time.Millisecond},
		{"fixed at initial level", DifficultyConfig{InitialLevel: 0.7, Scaling: ScalingConfig{OpponentSpeedup: 0.5}}, base, 20, 1950 * time.Millisecond},
		{"floor", scoring, 400 * time.Millisecond, 20, MinOpponentInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dm := NewDifficultyManager(tt.cfg)
			if got := dm.OpponentInterval(tt.base, tt.score, 0); got != tt.want {
				t.Errorf("OpponentInterval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDifficultyLevelByTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})
	if got := dm.Level(0, 50); got != 0.5 {
		t.Errorf("Level = %v, want 0.5", got)
	}
	dm.SetInitialLevel(2)
	if got := dm.Level(0, 0); got != 1 {
		t.Errorf("initial level not clamped: %v", got)
	}
}
