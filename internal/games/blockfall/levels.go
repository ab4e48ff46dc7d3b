package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
)

// Outcome is the state of the level being played.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeCleared
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeFailed:
		return "failed"
	default:
		return "playing"
	}
}

// LevelTracker follows one level-mode attempt: it counts placed pieces
// against the move budget and decides when the target is met.
type LevelTracker struct {
	gen   *levelgen.Generator
	desc  *levelgen.Descriptor
	moves int
}

// NewLevelTracker returns a tracker generating levels from table.
func NewLevelTracker(table levelgen.Table) *LevelTracker {
	return &LevelTracker{gen: levelgen.New(table)}
}

// Generate creates and begins level on a width x height board.
func (t *LevelTracker) Generate(rng *rand.Rand, level, width, height int) *levelgen.Descriptor {
	t.Begin(t.gen.Generate(rng, level, width, height))
	return t.desc
}

// Begin starts tracking d, for example one loaded from a level file.
func (t *LevelTracker) Begin(d *levelgen.Descriptor) {
	t.desc = d
	t.moves = 0
}

// Descriptor returns the level in play, or nil before the first Begin.
func (t *LevelTracker) Descriptor() *levelgen.Descriptor { return t.desc }

// Level returns the current level index, or 0 before the first Begin.
func (t *LevelTracker) Level() int {
	if t.desc == nil {
		return 0
	}
	return t.desc.Level
}

// Moves returns the pieces placed so far.
func (t *LevelTracker) Moves() int { return t.moves }

// MovesLeft returns the remaining budget.
func (t *LevelTracker) MovesLeft() int {
	if t.desc == nil {
		return 0
	}
	return max(0, t.desc.AllowedMoves-t.moves)
}

// Place counts one locked piece.
func (t *LevelTracker) Place() { t.moves++ }

// Outcome judges the attempt. Meeting the target wins even on the last
// move; otherwise topping out or running out of moves loses.
func (t *LevelTracker) Outcome(score, lines int, toppedOut bool) Outcome {
	if t.desc == nil {
		return OutcomePlaying
	}
	if t.desc.Met(score, lines) {
		return OutcomeCleared
	}
	if toppedOut || t.moves >= t.desc.AllowedMoves {
		return OutcomeFailed
	}
	return OutcomePlaying
}

// Result summarizes the attempt for storage.
func (t *LevelTracker) Result(score, lines int, cleared bool) core.LevelResult {
	return core.LevelResult{
		Level:   t.Level(),
		Cleared: cleared,
		Score:   score,
		Lines:   lines,
		Moves:   t.moves,
	}
}
