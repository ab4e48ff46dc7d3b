package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/bench"
)

var (
	flagBenchGames     int
	flagBenchJobs      int
	flagBenchSpeed     int
	flagBenchMaxPieces int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run headless AI games and report statistics",
	Long: `Play games with the AI in parallel, without a terminal, and report
mean and best scores plus a histogram of cleared lines. Game i uses seed
--seed + i, so a run with a fixed seed is reproducible.

Examples:
  blockfall bench
  blockfall bench --games 200 --jobs 8 --speed 10
  blockfall bench --config ./tuned-weights.yaml --seed 1`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchGames, "games", 20, "Number of games")
	benchCmd.Flags().IntVar(&flagBenchJobs, "jobs", 4, "Games played concurrently")
	benchCmd.Flags().IntVar(&flagBenchSpeed, "speed", 10, "AI speed 1..10")
	benchCmd.Flags().IntVar(&flagBenchMaxPieces, "max-pieces", bench.DefaultMaxPieces, "Piece cap per game")
	benchCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runBench(cmd *cobra.Command, _ []string) error {
	logger, closeLog := setupLogger(false)
	defer closeLog()

	bf, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	report, err := bench.Run(ctx, bench.Options{
		Games:     flagBenchGames,
		Jobs:      flagBenchJobs,
		Seed:      seed,
		Speed:     flagBenchSpeed,
		MaxPieces: flagBenchMaxPieces,
		Settings:  bf.EngineSettings(),
		Weights:   bf.AI.Weights,
		Logger:    logger,
	})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("bench interrupted: %w", context.Cause(ctx))
		}
		return err
	}

	fmt.Printf("Games: %d  Seed: %d  Jobs: %d  Time: %s\n",
		len(report.Results), seed, flagBenchJobs, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Score: mean %.1f  max %d\n", report.MeanScore, report.MaxScore)
	fmt.Printf("Lines: mean %.1f  max %d\n", report.MeanLines, report.MaxLines)
	fmt.Printf("Topped out: %d of %d (others hit the %d piece cap)\n",
		report.ToppedOut, len(report.Results), flagBenchMaxPieces)
	fmt.Println()
	printHistogram(report)
	return nil
}

func printHistogram(report *bench.Report) {
	buckets := report.Histogram()
	most := 0
	for _, b := range buckets {
		most = max(most, b.Games)
	}

	const barWidth = 40
	width := report.BucketWidth()
	fmt.Println("Lines cleared:")
	for _, b := range buckets {
		bar := strings.Repeat("█", max(1, b.Games*barWidth/most))
		fmt.Printf("  %5d-%-5d %s %d\n", b.Lines, b.Lines+width-1, bar, b.Games)
	}
}
