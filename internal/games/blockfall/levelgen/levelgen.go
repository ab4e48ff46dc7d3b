// Package levelgen builds the starting boards and targets for level mode.
// Generation is a pure function of the table, the level index, the board
// size and the supplied random source.
package levelgen

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// Descriptor is a generated level: its starting board and the targets a
// player must reach within the move budget.
type Descriptor struct {
	Level        int
	Board        *engine.Board
	TargetType   TargetType
	ScoreTarget  int
	LinesTarget  int
	AllowedMoves int

	Pattern       Pattern
	FillRows      int
	PatternRows   int
	BaseBlocks    int
	PatternBlocks int
}

// Target returns the threshold for the descriptor's target type.
func (d *Descriptor) Target() int {
	if d.TargetType == TargetLines {
		return d.LinesTarget
	}
	return d.ScoreTarget
}

// Met reports whether score and lines reach the level target.
func (d *Descriptor) Met(score, lines int) bool {
	if d.TargetType == TargetLines {
		return lines >= d.LinesTarget
	}
	return score >= d.ScoreTarget
}

// Blocks returns the number of pre-filled cells.
func (d *Descriptor) Blocks() int {
	return d.BaseBlocks + d.PatternBlocks
}

// Generator produces descriptors from a Table.
type Generator struct {
	Table Table
}

// New returns a generator for t.
func New(t Table) *Generator {
	return &Generator{Table: t}
}

// Generate builds level on a width x height board with the default table.
func Generate(rng *rand.Rand, level, width, height int) *Descriptor {
	return New(DefaultTable()).Generate(rng, level, width, height)
}

// Generate builds the descriptor for level. Levels below 1 are treated as 1.
func (g *Generator) Generate(rng *rand.Rand, level, width, height int) *Descriptor {
	level = max(1, level)
	t := g.Table
	band := t.BandFor(level)
	progress := band.progress(level)

	board := engine.NewBoard(width, height)
	d := &Descriptor{Level: level, Board: board}

	ceilingRows := int(math.Floor(float64(height) * t.CeilingFraction))
	ceiling := height - ceilingRows

	fill := math.Min(lerp(band.FillFrom, band.FillTo, progress), t.MaxFillFraction)
	d.FillRows = min(int(math.Floor(float64(height)*fill)), ceilingRows)
	density := lerp(band.HolesFrom, band.HolesTo, progress)
	d.BaseBlocks = fillBase(rng, board, d.FillRows, density, t.MinTopRowHoles)

	if len(band.Patterns) > 0 && band.PatternRows > 0 {
		d.Pattern = band.Patterns[level%len(band.Patterns)]
		top := height - d.FillRows
		d.PatternRows = max(0, min(band.PatternRows, top-ceiling))
		d.PatternBlocks = paintPattern(rng, board, d.Pattern, top, d.PatternRows)
	}

	d.TargetType = band.Target.targetFor(level)
	blocks := d.Blocks()
	d.ScoreTarget = t.ScoreBase + level*t.ScorePerLevel + blocks*t.ScorePerBlock
	d.LinesTarget = t.LinesBase + level/t.LinesLevelDivisor + blocks/t.LinesBlockDivisor

	var estimate int
	if d.TargetType == TargetLines {
		estimate = d.LinesTarget * ceilDiv(width, 4)
	} else {
		estimate = ceilDiv(d.ScoreTarget, t.ScorePerMove)
	}
	estimate += blocks / 8
	mult := band.MoveMultiplier
	if mult <= 0 {
		mult = 1
	}
	d.AllowedMoves = max(t.MoveFloor, int(math.Ceil(float64(estimate)*mult)))
	return d
}

// fillBase fills rows from the bottom, each cell empty with probability
// density. Every row keeps at least one gap and the top row at least
// minTopHoles. It returns the number of filled cells.
func fillBase(rng *rand.Rand, b *engine.Board, rows int, density float64, minTopHoles int) int {
	w, h := b.Width(), b.Height()
	total := 0
	for i := 0; i < rows; i++ {
		y := h - 1 - i
		for x := 0; x < w; x++ {
			if rng.Float64() >= density {
				b.Set(x, y, engine.Cell{Filled: true, Color: engine.Palette[rng.Intn(len(engine.Palette))]})
			}
		}
		need := 1
		if i == rows-1 {
			need = max(1, minTopHoles)
		}
		ensureGaps(rng, b, y, min(need, w))
		total += filledInRow(b, y)
	}
	return total
}

// paintPattern draws rows of pattern upward from the row above top.
func paintPattern(rng *rand.Rand, b *engine.Board, p Pattern, top, rows int) int {
	paint, ok := painters[p]
	if !ok {
		return 0
	}
	w := b.Width()
	total := 0
	for j := 0; j < rows; j++ {
		y := top - 1 - j
		color := core.ColorGray
		if j%2 == 1 {
			color = core.ColorWhite
		}
		for x := 0; x < w; x++ {
			if paint(x, j, w) {
				b.Set(x, y, engine.Cell{Filled: true, Color: color})
			}
		}
		ensureGaps(rng, b, y, 1)
		total += filledInRow(b, y)
	}
	return total
}

// ensureGaps empties random cells of row y until it has at least n gaps.
func ensureGaps(rng *rand.Rand, b *engine.Board, y, n int) {
	w := b.Width()
	for w-filledInRow(b, y) < n {
		x := rng.Intn(w)
		if b.Filled(x, y) {
			b.Set(x, y, engine.Cell{})
		}
	}
}

func filledInRow(b *engine.Board, y int) int {
	n := 0
	for x := 0; x < b.Width(); x++ {
		if b.Filled(x, y) {
			n++
		}
	}
	return n
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
