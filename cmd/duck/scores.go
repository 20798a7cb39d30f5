package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dapper-duck/internal/platform/tui"
	"github.com/vovakirdan/dapper-duck/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresYes   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: fmt.Sprintf(`Display the best runs. Only runs scoring %d or more are listed.

Examples:
  duck scores
  duck scores --limit 25
  duck scores --tui
  duck scores --clear`, storage.LeaderboardMin),
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive leaderboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs (achievements are kept)")
	scoresCmd.Flags().BoolVar(&flagScoresYes, "yes", false, "Skip the --clear confirmation")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		return clearScores(store)
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("Dapper Duck - Leaderboard")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'duck play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-7s  %-40s  %s\n", "Rank", "Score", "Time", "Ended", "Date")
	fmt.Printf("  %-4s  %-7s  %-7s  %-40s  %s\n", "----", "-----", "----", "-----", "----")
	for i, e := range scores {
		ended := e.Reason
		if e.Remote != "" {
			ended += " (" + e.Remote + ")"
		}
		fmt.Printf("  %-4d  %-7d  %-7s  %-40s  %s\n",
			i+1, e.Score, fmt.Sprintf("%.1fs", e.Survival), ended, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func clearScores(store *storage.Store) error {
	if !flagScoresYes {
		fmt.Print("Delete every recorded run? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := store.ClearScores(); err != nil {
		return err
	}
	fmt.Println("Scores cleared.")
	return nil
}
