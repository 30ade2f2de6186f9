package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

var (
	flagSimTicks   int
	flagSimConfig  string
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless computer-only game",
	Long: `Let the computer play a game without a terminal UI. Every engine event
is logged to stderr and the final board is printed to stdout.

The same --seed and --fps always replay the same game.

Examples:
  match3 sim
  match3 sim --ticks 600 --seed 42
  match3 sim --verbose --config ./my-match3.yaml`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log engine internals at debug level")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	match3.SetConfigPath(flagSimConfig)
	match3.SetLogger(logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sc, err := match3.SessionConfigFor(match3.LoadConfig(), engine.ModeWatch, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := core.RuntimeConfig{TickRate: flagFPS}
	session := engine.NewSession(sc)
	logger.Info("simulating", "seed", seed, "ticks", flagSimTicks, "board", fmt.Sprintf("%dx%d", sc.Width, sc.Height))

	snap := simulate(session, flagSimTicks, rt.TickDuration(), logger)

	fmt.Println(snap.Board)
	fmt.Println()
	fmt.Printf("Ticks: %d  Moves: %d  Score: %d\n", snap.Tick, snap.Automated.Moves, snap.Automated.Score)
	stats := session.GeneratorStats()
	fmt.Printf("Pieces placed: %d  Redraws: %d  Fallbacks: %d\n", stats.Placed, stats.Redraws, stats.Fallbacks)
	if snap.GameOver {
		fmt.Printf("Game over: %s\n", snap.Reason)
	}
}

// simulate advances the session until it ends or ticks run out, logging
// each event as it happens.
func simulate(s *engine.Session, ticks int, delta time.Duration, logger *log.Logger) engine.Snapshot {
	for i := 0; i < ticks; i++ {
		s.Tick(delta)
		for _, ev := range s.Events() {
			logEvent(logger, ev)
		}
		if over, _ := s.GameOver(); over {
			break
		}
	}
	return s.Snapshot()
}

func logEvent(logger *log.Logger, ev engine.Event) {
	kv := []any{"tick", ev.Tick}
	switch ev.Kind {
	case engine.EventSwapped, engine.EventSwappedBack:
		kv = append(kv, "side", ev.Side, "from", ev.Swap.Pos1, "to", ev.Swap.Pos2)
	case engine.EventSwapRejected:
		kv = append(kv, "side", ev.Side, "from", ev.Intent.From, "dir", ev.Intent.Dir, "err", ev.Err)
	case engine.EventSwapBack, engine.EventOpponentMove:
		kv = append(kv, "side", ev.Side, "from", ev.Intent.From, "dir", ev.Intent.Dir)
	case engine.EventMatched, engine.EventDestroyed, engine.EventCollapsed, engine.EventSpawned:
		kv = append(kv, "cells", len(ev.Cells))
	case engine.EventScored, engine.EventTurnChanged:
		kv = append(kv, "side", ev.Side)
	case engine.EventGameOver:
		kv = append(kv, "reason", ev.Reason)
	}
	logger.Info(ev.Kind.String(), kv...)
}
