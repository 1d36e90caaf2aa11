package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringpong/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the longest rallies",
	Long: `Display the longest rallies and the most recent online matches.

Examples:
  ringpong scores
  ringpong scores --mode hotseat
  ringpong scores --mode online --limit 20
  ringpong scores --clear --mode hotseat`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only this mode: hotseat or online (default: all)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rallies to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored rallies instead of showing them")
}

func runScores(_ *cobra.Command, _ []string) {
	switch flagScoresMode {
	case "", storage.ModeHotSeat, storage.ModeOnline:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want %s or %s)\n",
			flagScoresMode, storage.ModeHotSeat, storage.ModeOnline)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rallies database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRallies(flagScoresMode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Rallies cleared.")
		return
	}

	rallies, err := store.TopRallies(flagScoresMode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rallies: %v\n", err)
		return
	}

	title := "all modes"
	if flagScoresMode != "" {
		title = flagScoresMode
	}
	fmt.Printf("Longest Rallies - %s\n", title)
	fmt.Println()

	if len(rallies) == 0 {
		fmt.Println("No rallies recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ringpong play' to set the first one!")
	} else {
		fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Rank", "Rally", "Mode", "Date")
		fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "----", "----")
		for i, entry := range rallies {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-6d  %-8s  %s\n", i+1, entry.Length, entry.Mode, dateStr)
		}

		if stats, err := store.Stats(flagScoresMode); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d  Rallies: %d  Average: %.1f\n", stats.Best, stats.Count, stats.Average)
		}
	}

	if flagScoresMode == storage.ModeHotSeat {
		return
	}

	matches, err := store.RecentMatches(5)
	if err != nil || len(matches) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent Online Matches")
	fmt.Println()
	for _, m := range matches {
		fmt.Printf("  %s  %2d : %-2d  best rally %-3d  %-10s  %ds\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.Score1, m.Score2, m.BestRally, m.EndReason, m.Duration)
	}
}
