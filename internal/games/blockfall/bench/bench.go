// Package bench plays headless AI games in parallel and aggregates the
// results. Every game owns its engine and random source, so workers share
// nothing but the result slice, which they write by index.
package bench

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/ai"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// DefaultMaxPieces caps a game that the AI would otherwise play forever.
const DefaultMaxPieces = 1000

// Options configure a benchmark run.
type Options struct {
	Games     int
	Jobs      int   // concurrent games, <= 0 means one per game
	Seed      int64 // game i uses Seed+i
	Speed     int   // AI speed 1..10
	MaxPieces int   // 0 means DefaultMaxPieces
	Bucket    int   // histogram bucket width in lines, 0 means 10
	Settings  engine.Settings
	Weights   ai.Weights
	Logger    *log.Logger
}

// GameResult is the outcome of one headless game.
type GameResult struct {
	Seed      int64
	Score     int
	Lines     int
	Pieces    int
	ToppedOut bool // false when the piece cap ended the game
}

// Bucket is one histogram bar: games whose line count falls in
// [Lines, Lines+width).
type Bucket struct {
	Lines int
	Games int
}

// Report aggregates a run.
type Report struct {
	Results   []GameResult
	MeanScore float64
	MaxScore  int
	MeanLines float64
	MaxLines  int
	ToppedOut int

	bucket    int
	histogram *intmap.Map[int, int]
}

// ErrNoGames is returned when Options.Games is not positive.
var ErrNoGames = errors.New("bench: no games to play")

// Run plays opts.Games games and aggregates them. It stops at the first
// error, including cancellation of ctx.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Games <= 0 {
		return nil, ErrNoGames
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	results := make([]GameResult, opts.Games)
	grp, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		grp.SetLimit(opts.Jobs)
	}

	for i := range opts.Games {
		grp.Go(func() error {
			r, err := Play(ctx, opts.Seed+int64(i), opts)
			if err != nil {
				return err
			}
			results[i] = r
			opts.Logger.Debug("game finished", "seed", r.Seed, "score", r.Score, "lines", r.Lines, "pieces", r.Pieces)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return summarize(results, opts.Bucket), nil
}

// Play runs one AI game with the given seed until it tops out or reaches
// the piece cap. The clock advances one AI interval per step.
func Play(ctx context.Context, seed int64, opts Options) (GameResult, error) {
	maxPieces := opts.MaxPieces
	if maxPieces <= 0 {
		maxPieces = DefaultMaxPieces
	}

	e := engine.New(opts.Settings, rand.New(rand.NewSource(seed)),
		engine.WithPlanner(ai.New(opts.Weights)),
	)
	if opts.Speed > 0 {
		e.SetAISpeed(opts.Speed)
	}
	e.HandleInput(engine.InputToggleAI)
	e.Start()

	res := GameResult{Seed: seed}
	step := e.AIMoveInterval()
	for !e.GameOver() && res.Pieces < maxPieces {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		e.Advance(step)
		for _, ev := range e.DrainEvents() {
			if _, ok := ev.(engine.ShapePlacedEvent); ok {
				res.Pieces++
			}
		}
	}

	res.Score = e.Score()
	res.Lines = e.Lines()
	res.ToppedOut = e.GameOver()
	return res, nil
}

func summarize(results []GameResult, bucket int) *Report {
	if bucket <= 0 {
		bucket = 10
	}
	r := &Report{
		Results:   results,
		bucket:    bucket,
		histogram: intmap.New[int, int](16),
	}

	var scoreSum, linesSum int
	for _, g := range results {
		scoreSum += g.Score
		linesSum += g.Lines
		r.MaxScore = max(r.MaxScore, g.Score)
		r.MaxLines = max(r.MaxLines, g.Lines)
		if g.ToppedOut {
			r.ToppedOut++
		}
		key := g.Lines / bucket * bucket
		n, _ := r.histogram.Get(key)
		r.histogram.Put(key, n+1)
	}
	if n := len(results); n > 0 {
		r.MeanScore = float64(scoreSum) / float64(n)
		r.MeanLines = float64(linesSum) / float64(n)
	}
	return r
}

// Histogram returns the non-empty line buckets in ascending order.
func (r *Report) Histogram() []Bucket {
	out := make([]Bucket, 0, r.histogram.Len())
	r.histogram.ForEach(func(lines, games int) bool {
		out = append(out, Bucket{Lines: lines, Games: games})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Lines < out[j].Lines })
	return out
}

// BucketWidth returns the histogram bucket width in lines.
func (r *Report) BucketWidth() int {
	return r.bucket
}
