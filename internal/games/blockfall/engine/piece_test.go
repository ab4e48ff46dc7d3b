package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

func TestRotateClockwise(t *testing.T) {
	p := engine.NewShape(engine.KindT, core.ColorMagenta)
	require.Equal(t, "###\n.#.", p.String())

	p.Rotate()
	assert.Equal(t, 2, p.Width())
	assert.Equal(t, 3, p.Height())
	assert.Equal(t, ".#\n##\n.#", p.String())
}

func TestRotateThenRollbackRestoresEveryOrientation(t *testing.T) {
	for _, start := range allOrientations() {
		p := start.Clone()
		before := p.Clone()

		p.Rotate()
		require.NoError(t, p.RollbackRotation(), "%v", p.Kind)

		assert.Equal(t, before.Blocks(), p.Blocks(), "%v matrix", p.Kind)
		assert.Equal(t, before.Width(), p.Width(), "%v width", p.Kind)
		assert.Equal(t, before.Height(), p.Height(), "%v height", p.Kind)
	}
}

func TestRollbackWithoutRotateIsRejected(t *testing.T) {
	p := engine.NewShape(engine.KindL, core.ColorOrange)
	assert.False(t, p.CanRollback())
	assert.ErrorIs(t, p.RollbackRotation(), engine.ErrNoRotation)

	p.Rotate()
	require.True(t, p.CanRollback())
	require.NoError(t, p.RollbackRotation())
	// Only one level of undo is kept.
	assert.ErrorIs(t, p.RollbackRotation(), engine.ErrNoRotation)
}

func TestOrientationCounts(t *testing.T) {
	want := map[engine.Kind]int{
		engine.KindO: 1,
		engine.KindI: 2,
		engine.KindS: 2,
		engine.KindZ: 2,
		engine.KindT: 4,
		engine.KindJ: 4,
		engine.KindL: 4,
	}
	for kind, n := range want {
		p := engine.NewShape(kind, core.ColorRed)
		assert.Equal(t, n, p.Orientations(), "%v", kind)

		// The count matches the real cycle length.
		start := p.Clone()
		for i := 0; i < n; i++ {
			p.Rotate()
		}
		assert.True(t, p.SameShape(start), "%v after %d rotations", kind, n)
	}
}

func TestRandomShapeReturnsIndependentCopies(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[engine.Kind]bool)

	var pieces []*engine.Piece
	for i := 0; i < 500; i++ {
		p := engine.RandomShape(rng)
		seen[p.Kind] = true
		assert.Contains(t, engine.Palette, p.Color)
		pieces = append(pieces, p)
	}
	assert.Len(t, seen, len(engine.Kinds()), "every prototype should come up")

	// Rotating one instance must not leak into the catalog or siblings.
	pieces[0].Rotate()
	fresh := engine.NewShape(pieces[0].Kind, core.ColorRed)
	if pieces[0].Orientations() > 1 {
		assert.False(t, fresh.SameShape(pieces[0]))
	}
	for _, p := range pieces[1:] {
		if p.Kind == pieces[0].Kind {
			assert.True(t, p.SameShape(fresh))
		}
	}
}

func TestRandomShapeIsDeterministicForSeed(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		pa, pb := engine.RandomShape(a), engine.RandomShape(b)
		require.Equal(t, pa.Kind, pb.Kind)
		require.Equal(t, pa.Color, pb.Color)
	}
}

func TestPieceCells(t *testing.T) {
	p := engine.NewShape(engine.KindS, core.ColorGreen)
	p.X, p.Y = 3, -1

	assert.ElementsMatch(t, []core.Point{{X: 4, Y: -1}, {X: 5, Y: -1}, {X: 3, Y: 0}, {X: 4, Y: 0}}, p.Cells())
	assert.Equal(t, -1, p.TopFilledRow())
}
