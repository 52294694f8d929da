package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skunk-squad/internal/platform/tui"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
)

var (
	flagTop   int
	flagBoard bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs, highest score first. Ties go to the earlier run.

Examples:
  skunk scores
  skunk scores --top 25
  skunk scores --board`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagTop, "top", "n", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive leaderboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every leaderboard entry")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if flagClear {
		if err := store.Clear(ctx); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Leaderboard cleared.")
		return
	}

	if flagBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	entries, err := store.Top(ctx, flagTop)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Skunk Squad")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skunk play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-16s  %s\n", "Rank", "Score", "Level", "Kills", "Date", "Code")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-16s  %s\n", "----", "-----", "-----", "-----", "----", "----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-16s  %s\n",
			i+1, e.Record.Score, e.Record.LevelReached, e.Record.Kills,
			e.CreatedAt.Format("2006-01-02 15:04"), scorecode.Format(e.Code))
	}

	stats, err := store.Stats(ctx)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Kills: %d\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.TotalKills)
	}
}
