package levelgen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
)

func generate(seed int64, level int) *levelgen.Descriptor {
	return levelgen.Generate(rand.New(rand.NewSource(seed)), level, 15, 20)
}

func highestFilledRow(b *engine.Board) int {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Filled(x, y) {
				return y
			}
		}
	}
	return b.Height()
}

func TestEarlyAndLateLevelsDiffer(t *testing.T) {
	early := generate(1, 1)
	late := generate(1, 300)

	assert.Zero(t, early.PatternBlocks)
	assert.Equal(t, levelgen.PatternNone, early.Pattern)
	assert.Greater(t, late.FillRows, early.FillRows)
	assert.Greater(t, late.PatternBlocks, early.PatternBlocks)
	assert.Equal(t, levelgen.PatternCheckerboard, late.Pattern)
}

func TestGeneratedCellsStayBelowCeiling(t *testing.T) {
	// floor(20 * 0.5) rows from the bottom may be used.
	const ceiling = 10
	for _, level := range []int{1, 10, 11, 49, 50, 77, 150, 151, 300, 500, 2000} {
		for seed := int64(0); seed < 5; seed++ {
			d := generate(seed, level)
			assert.GreaterOrEqual(t, highestFilledRow(d.Board), ceiling, "level %d seed %d", level, seed)
			assert.LessOrEqual(t, d.FillRows, 7, "fill capped at 35%% of the board")
		}
	}
}

func TestGeneratedBoardsHaveNoCompleteRows(t *testing.T) {
	for level := 1; level <= 400; level += 13 {
		d := generate(int64(level), level)
		assert.Empty(t, d.Board.CompleteRows(), "level %d", level)
	}
}

func TestTopBaseRowKeepsGuaranteedHoles(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d := generate(seed, 250)
		require.Positive(t, d.FillRows)
		y := d.Board.Height() - d.FillRows
		empty := 0
		for x := 0; x < d.Board.Width(); x++ {
			if !d.Board.Filled(x, y) {
				empty++
			}
		}
		assert.GreaterOrEqual(t, empty, 2, "seed %d", seed)
	}
}

func TestBlockCountsMatchBoard(t *testing.T) {
	d := generate(7, 120)
	assert.Equal(t, d.Board.CountFilled(), d.Blocks())
}

func TestSameSeedSameLevel(t *testing.T) {
	a := generate(42, 180)
	b := generate(42, 180)
	assert.True(t, a.Board.Equal(b.Board))
	assert.Equal(t, a.AllowedMoves, b.AllowedMoves)
}

func TestTargetRules(t *testing.T) {
	tests := []struct {
		level int
		want  levelgen.TargetType
	}{
		{1, levelgen.TargetScore},
		{10, levelgen.TargetScore},
		{20, levelgen.TargetLines},
		{21, levelgen.TargetScore},
		{100, levelgen.TargetLines},
		{151, levelgen.TargetLines},
		{999, levelgen.TargetLines},
	}
	for _, tc := range tests {
		d := generate(3, tc.level)
		assert.Equal(t, tc.want, d.TargetType, "level %d", tc.level)
	}
}

func TestTargetsAndBudget(t *testing.T) {
	d := generate(5, 1)
	require.Equal(t, levelgen.TargetScore, d.TargetType)
	require.Zero(t, d.Blocks(), "band 1 starts empty")

	assert.Equal(t, 500+40, d.ScoreTarget)
	assert.Equal(t, 3, d.LinesTarget)
	// ceil(540/35) = 16; 16 * 1.5 = 24.
	assert.Equal(t, 24, d.AllowedMoves)
	assert.Equal(t, 540, d.Target())
	assert.False(t, d.Met(539, 100))
	assert.True(t, d.Met(540, 0))
}

func TestMoveBudgetFloor(t *testing.T) {
	tbl := levelgen.DefaultTable()
	tbl.MoveFloor = 200
	d := levelgen.New(tbl).Generate(rand.New(rand.NewSource(1)), 30, 15, 20)
	assert.Equal(t, 200, d.AllowedMoves)
}

func TestBandLookup(t *testing.T) {
	tbl := levelgen.DefaultTable()
	assert.Equal(t, 1, tbl.BandFor(0).FirstLevel)
	assert.Equal(t, 11, tbl.BandFor(11).FirstLevel)
	assert.Equal(t, 51, tbl.BandFor(150).FirstLevel)
	assert.Equal(t, 151, tbl.BandFor(10_000).FirstLevel)
}

func TestValidate(t *testing.T) {
	require.NoError(t, levelgen.DefaultTable().Validate())

	tbl := levelgen.DefaultTable()
	tbl.Bands[1].Patterns = append(tbl.Bands[1].Patterns, "spiral")
	var bandErr *levelgen.BandError
	require.ErrorAs(t, tbl.Validate(), &bandErr)
	assert.Equal(t, 1, bandErr.Index)

	tbl = levelgen.DefaultTable()
	tbl.ScorePerMove = 0
	assert.Error(t, tbl.Validate())
}
