package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration, used when even the
// embedded YAML cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:  7,
			Height: 7,
			Colors: []string{"blue", "pink", "green", "yellow"},
		},
		Timers: TimersConfig{
			DestroyMs:  800,
			CollapseMs: 1000,
			RefillMs:   1400,
			OpponentMs: 3000,
			SwapBackMs: 200,
		},
		Match: MatchConfig{
			MovesPerSide:   20,
			AlternateTurns: true,
			StartingTurn:   "human",
		},
		Layout: LayoutConfig{
			CellWidth:  4,
			CellHeight: 2,
			Origin:     OriginCenter,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				OpponentSpeedup: 0.5,
			},
		},
	}
}
