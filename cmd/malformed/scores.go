package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/malformed/internal/registry"
	"github.com/vovakirdan/malformed/internal/storage"
)

var (
	flagTop    int
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and recent runs",
	Long: `Display the leaderboard, lifetime stats and the latest runs
of a variant (default: --variant).

Examples:
  malformed scores
  malformed scores memory --recent 20
  malformed scores stamina --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagTop, "top", 10, "Number of high scores to show")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and run of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	name := flagVariant
	if len(args) == 1 {
		name = args[0]
	}
	gameID, _, err := resolveGameID(name)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all runs of %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagTop)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'malformed play %s' to set the first high score!\n", name)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Best: %d  Average: %.1f\n", stats.RunsCount, stats.HighScore, stats.AvgScore)
	fmt.Fprintf(out, "Bytes collected: %d  Longest run: %.0f\n", stats.TotalBytes, stats.BestDistance)
	if len(stats.Deaths) > 0 {
		causes := make([]string, 0, len(stats.Deaths))
		for cause := range stats.Deaths {
			causes = append(causes, cause)
		}
		slices.Sort(causes)
		fmt.Fprint(out, "Deaths:")
		for _, cause := range causes {
			fmt.Fprintf(out, " %s=%d", cause, stats.Deaths[cause])
		}
		fmt.Fprintln(out)
	}

	if flagRecent <= 0 {
		return nil
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent runs:")
	fmt.Fprintf(out, "  %-8s  %-6s  %-9s  %-7s  %s\n", "Score", "Bytes", "Distance", "Cause", "Date")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-8d  %-6d  %-9.0f  %-7s  %s\n",
			r.Score, r.Bytes, r.Distance, r.Cause, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
