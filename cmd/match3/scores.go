package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and match history",
	Long: `Display the top 10 scores for a mode and, for matches against the
computer, the win/loss record and the most recent results.

Without a mode, opens the interactive scoreboard.

Examples:
  match3 scores
  match3 scores match3
  match3 scores match3_solo`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	info, ok := findGame(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available modes.")
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		if best, err := store.HighScore(gameID); err == nil {
			fmt.Printf("Best: %d\n", best)
		}
	}

	printMatches(store, gameID)
}

// printMatches prints the record and recent results against the computer.
func printMatches(store *storage.Store, gameID string) {
	rec, err := store.MatchRecordFor(gameID)
	if err != nil || rec.Played() == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("Record: %d won, %d lost, %d drawn\n", rec.Wins, rec.Losses, rec.Draws)

	matches, err := store.RecentMatches(gameID, 5)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Printf("  %-6s  %-7s  %-15s  %s\n", "Result", "Score", "Reason", "Date")
	fmt.Printf("  %-6s  %-7s  %-15s  %s\n", "------", "-----", "------", "----")
	for _, m := range matches {
		score := fmt.Sprintf("%d-%d", m.HumanScore, m.CPUScore)
		fmt.Printf("  %-6s  %-7s  %-15s  %s\n",
			tui.ResultLabel(m.Winner), score, m.Reason, m.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func findGame(id string) (registry.GameInfo, bool) {
	for _, g := range registry.List() {
		if g.ID == id {
			return g, true
		}
	}
	return registry.GameInfo{}, false
}
