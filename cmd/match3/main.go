// match3 is a terminal match-3 game: play against the computer, alone, or
// watch the computer play.
//
// Usage:
//
//	match3                   - Pick a mode from the menu
//	match3 menu              - Same as above
//	match3 list              - List available game modes
//	match3 play [mode]       - Play a mode (default: match3)
//	match3 sim               - Run a headless computer-only game
//	match3 scores [mode]     - Show high scores and match history
//	match3 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the match-3 modes
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 in your terminal",
	Args:  cobra.NoArgs,
	Run:   runMenu,
	Long: `Match-3 is a tile-matching game for the terminal. Swap two adjacent
pieces to line up three or more of the same color; matched pieces vanish,
the ones above fall and new pieces drop in from the top.

Run without a command to open the mode picker.

Available commands:
  menu     - Interactive mode picker with scoreboard
  list     - Show all game modes
  play     - Play a mode directly
  sim      - Let the computer play headless and log what happens
  scores   - View high scores and match history
  serve    - Start SSH server for remote play

Examples:
  match3
  match3 play
  match3 play match3_solo --difficulty hard
  match3 sim --ticks 3600 --seed 42
  match3 serve --ssh :2222
  match3 scores match3`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
