package core

import "time"

// RuntimeConfig is handed to a game on Reset. Games size their layout from
// the screen and seed their RNG from Seed so runs can be replayed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// MatchResult is the outcome of a finished two-sided game.
type MatchResult struct {
	HumanScore    int
	OpponentScore int
	HumanMoves    int
	OpponentMoves int
	Winner        string // "human", "cpu" or "" for a draw
	Reason        string
	Duration      time.Duration
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int  // Score of the local player
	GameOver bool // The game has ended
	Paused   bool

	// Match is set once a two-sided game ends.
	Match *MatchResult
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
