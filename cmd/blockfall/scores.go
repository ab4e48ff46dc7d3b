package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for a mode (marathon by default).
For level mode the recent level attempts and the best cleared level are
shown as well.

Examples:
  blockfall scores
  blockfall scores levels
  blockfall scores autoplay --limit 20
  blockfall scores marathon --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and level results of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "Rank", "Score", "Lines", "Level", "Date")
		fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %s\n", i+1, entry.Score, entry.Lines, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d  Games: %d  Average: %.0f  Most lines: %d\n",
				stats.HighScore, stats.GamesCount, stats.AvgScore, stats.MostLines)
		}
	}

	if gameID == blockfall.IDLevels {
		return printLevelResults(store, gameID)
	}
	return nil
}

func printLevelResults(store *storage.Store, gameID string) error {
	best, err := store.BestClearedLevel(gameID)
	if err != nil {
		return err
	}
	results, err := store.RecentLevelResults(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Best cleared level: %d\n", best)
	if len(results) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %-8s  %-5s  %-5s  %s\n", "Level", "Result", "Score", "Lines", "Moves", "Date")
	for _, r := range results {
		result := "failed"
		if r.Cleared {
			result = "cleared"
		}
		fmt.Printf("  %-5d  %-7s  %-8d  %-5d  %-5d  %s\n", r.Level, result, r.Score, r.Lines, r.Moves, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
