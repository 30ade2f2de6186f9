// Package config loads the match-3 configuration from YAML, with embedded
// defaults and named difficulty presets.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Timers     TimersConfig     `yaml:"timers"`
	Match      MatchConfig      `yaml:"match"`
	Layout     LayoutConfig     `yaml:"layout"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sizes the grid and names the palette.
type BoardConfig struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Colors []string `yaml:"colors"` // blue, pink, green, yellow
}

// TimersConfig holds the phase cadence in milliseconds.
type TimersConfig struct {
	DestroyMs  int `yaml:"destroy_ms"`
	CollapseMs int `yaml:"collapse_ms"`
	RefillMs   int `yaml:"refill_ms"`
	OpponentMs int `yaml:"opponent_ms"`
	SwapBackMs int `yaml:"swap_back_ms"`
}

// MatchConfig defines the flow of a two-sided game.
type MatchConfig struct {
	MovesPerSide   int    `yaml:"moves_per_side"` // 0 = unlimited
	AlternateTurns bool   `yaml:"alternate_turns"`
	StartingTurn   string `yaml:"starting_turn"` // "human" or "cpu"
}

// LayoutConfig defines how the board maps onto the terminal.
type LayoutConfig struct {
	CellWidth  int    `yaml:"cell_width"`
	CellHeight int    `yaml:"cell_height"`
	Origin     string `yaml:"origin"` // "center" or "top_left"
}

// Layout origins.
const (
	OriginCenter  = "center"
	OriginTopLeft = "top_left"
)

// DifficultyConfig defines how the opponent speeds up over a game.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	OpponentSpeedup float64 `yaml:"opponent_speedup"` // Fraction of the opponent interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. The empty string is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

var knownColors = map[string]bool{"blue": true, "pink": true, "green": true, "yellow": true}

// Validate checks the values a game cannot start without.
func (c Match3Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Board.Width < 3 || c.Board.Height < 3 {
		add("board must be at least 3x3, got %dx%d", c.Board.Width, c.Board.Height)
	}
	if len(c.Board.Colors) < 3 {
		add("board needs at least 3 colors, got %d", len(c.Board.Colors))
	}
	seen := make(map[string]bool, len(c.Board.Colors))
	for _, name := range c.Board.Colors {
		n := strings.ToLower(strings.TrimSpace(name))
		switch {
		case !knownColors[n]:
			add("unknown color %q", name)
		case seen[n]:
			add("duplicate color %q", name)
		}
		seen[n] = true
	}

	t := c.Timers
	for _, ms := range []struct {
		name string
		v    int
	}{
		{"destroy_ms", t.DestroyMs},
		{"collapse_ms", t.CollapseMs},
		{"refill_ms", t.RefillMs},
		{"opponent_ms", t.OpponentMs},
		{"swap_back_ms", t.SwapBackMs},
	} {
		if ms.v <= 0 {
			add("timers.%s must be positive, got %d", ms.name, ms.v)
		}
	}

	if c.Match.MovesPerSide < 0 {
		add("match.moves_per_side must not be negative")
	}
	if s := c.Match.StartingTurn; s != "" && s != "human" && s != "cpu" {
		add("match.starting_turn must be human or cpu, got %q", s)
	}
	if c.Layout.CellWidth < 1 || c.Layout.CellHeight < 1 {
		add("layout cells must be at least 1x1")
	}
	if o := c.Layout.Origin; o != "" && o != OriginCenter && o != OriginTopLeft {
		add("layout.origin must be center or top_left, got %q", o)
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
