package bench_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/ai"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/bench"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

func options(games int) bench.Options {
	return bench.Options{
		Games:     games,
		Jobs:      2,
		Seed:      100,
		Speed:     10,
		MaxPieces: 40,
		Bucket:    5,
		Settings:  engine.DefaultSettings(),
		Weights:   ai.DefaultWeights(),
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := bench.Run(context.Background(), options(4))
	require.NoError(t, err)
	second, err := bench.Run(context.Background(), options(4))
	require.NoError(t, err)

	assert.Equal(t, first.Results, second.Results)
	for i, r := range first.Results {
		assert.Equal(t, int64(100+i), r.Seed, "results are kept in game order")
	}
}

func TestRunRespectsPieceCap(t *testing.T) {
	report, err := bench.Run(context.Background(), options(3))
	require.NoError(t, err)

	for _, r := range report.Results {
		if !r.ToppedOut {
			assert.GreaterOrEqual(t, r.Pieces, 40)
		}
		assert.Less(t, r.Pieces, 45, "a step locks at most a couple of pieces")
		assert.Positive(t, r.Score)
	}
}

func TestReportAggregates(t *testing.T) {
	report, err := bench.Run(context.Background(), options(5))
	require.NoError(t, err)

	var games, scoreSum int
	for _, b := range report.Histogram() {
		assert.Zero(t, b.Lines%report.BucketWidth())
		games += b.Games
	}
	assert.Equal(t, 5, games)

	for _, r := range report.Results {
		scoreSum += r.Score
		assert.LessOrEqual(t, r.Score, report.MaxScore)
	}
	assert.InDelta(t, float64(scoreSum)/5, report.MeanScore, 1e-9)

	buckets := report.Histogram()
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Lines, buckets[i].Lines)
	}
}

func TestRunErrors(t *testing.T) {
	_, err := bench.Run(context.Background(), options(0))
	require.ErrorIs(t, err, bench.ErrNoGames)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bench.Run(ctx, options(2))
	require.ErrorIs(t, err, context.Canceled)
}
