package blockfall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelfile"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// useConfig points the package at a config file for the duration of a test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetLevelFile("")
		SetStartLevel(0)
		SetDifficultyPreset("")
	})
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func writeLevel(t *testing.T, d *levelgen.Descriptor) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, levelfile.Save(path, d, 0))
	return path
}

func TestRegisteredModes(t *testing.T) {
	for id, title := range map[string]string{
		IDMarathon: "Blockfall",
		IDLevels:   "Blockfall (Levels)",
		IDAutoplay: "Blockfall (Autoplay)",
	} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		assert.Equal(t, title, g.Title())
	}
}

func TestMarathonPieceFalls(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	g := New()
	g.Reset(runtimeConfig(1))
	startY := g.Engine().Current().Y

	for i := 0; i < 60; i++ {
		g.Step(frame())
	}
	assert.Greater(t, g.Engine().Current().Y, startY)
	assert.False(t, g.State().GameOver)
}

func TestDropActionLocksPiece(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	g := New()
	g.Reset(runtimeConfig(1))

	g.Step(frame(core.ActionDrop))
	assert.Equal(t, 4, g.Engine().Board().CountFilled())
	assert.Positive(t, g.State().Score)
}

func TestPauseToggles(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	g := New()
	g.Reset(runtimeConfig(1))

	g.Step(frame(core.ActionPause))
	require.True(t, g.State().Paused)
	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestAutoplayPlacesPieces(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\nai: {speed: 10}\n")
	g := NewAutoplay()
	g.Reset(runtimeConfig(3))
	require.True(t, g.Engine().AIMode())

	for i := 0; i < 120; i++ {
		g.Step(frame())
	}
	assert.Positive(t, g.Engine().Board().CountFilled()+g.State().Lines)
}

func TestPowerupInventory(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\npowerups: {ai_assist: 0, clear_row: 1}\n")
	g := New()
	g.Reset(runtimeConfig(1))

	g.Step(frame(core.ActionClearRow))
	assert.Equal(t, 0, g.Inventory().ClearRow)
	assert.Equal(t, "clear-row", g.message)

	g.Step(frame(core.ActionClearRow))
	assert.Equal(t, "No row clears left", g.message)

	g.Step(frame(core.ActionAssist))
	assert.Equal(t, "No assist left", g.message)
	assert.Zero(t, g.Engine().Board().CountFilled())
}

func TestLevelClearedThenNext(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	SetLevelFile(writeLevel(t, &levelgen.Descriptor{
		Level:        7,
		Board:        engine.NewBoard(10, 20),
		TargetType:   levelgen.TargetScore,
		ScoreTarget:  1,
		LinesTarget:  3,
		AllowedMoves: 5,
	}))

	g := NewLevels()
	g.Reset(runtimeConfig(1))
	require.Equal(t, 7, g.State().Level)

	g.Step(frame(core.ActionDown))
	require.Equal(t, OutcomeCleared, g.Outcome())
	st := g.State()
	assert.False(t, st.GameOver)
	assert.Equal(t, 1, st.Score)

	results := g.DrainLevelResults()
	require.Len(t, results, 1)
	assert.Equal(t, core.LevelResult{Level: 7, Cleared: true, Score: 1}, results[0])
	assert.Empty(t, g.DrainLevelResults())

	// Input other than confirm waits on the cleared screen.
	g.Step(frame(core.ActionLeft))
	require.Equal(t, OutcomeCleared, g.Outcome())

	g.Step(frame(core.ActionConfirm))
	assert.Equal(t, OutcomePlaying, g.Outcome())
	assert.Equal(t, 8, g.State().Level)
	assert.Equal(t, 1, g.State().Score, "banked score carries over")
}

func TestLevelFailsWhenMovesRunOut(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	SetLevelFile(writeLevel(t, &levelgen.Descriptor{
		Level:        4,
		Board:        engine.NewBoard(10, 20),
		TargetType:   levelgen.TargetLines,
		ScoreTarget:  500,
		LinesTarget:  2,
		AllowedMoves: 1,
	}))

	g := NewLevels()
	g.Reset(runtimeConfig(1))
	g.Step(frame(core.ActionDrop))

	require.Equal(t, OutcomeFailed, g.Outcome())
	assert.True(t, g.State().GameOver)
	results := g.DrainLevelResults()
	require.Len(t, results, 1)
	assert.False(t, results[0].Cleared)
	assert.Equal(t, 1, results[0].Moves)

	// Restart retries the same level.
	g.Reset(runtimeConfig(2))
	assert.Equal(t, OutcomePlaying, g.Outcome())
	assert.Equal(t, 4, g.State().Level)
	assert.Equal(t, 1, g.Snapshot().MovesLeft)
}

func TestGeneratedLevelStartsFromSelectedLevel(t *testing.T) {
	useConfig(t, "")
	SetStartLevel(120)

	g := NewLevels()
	g.Reset(runtimeConfig(5))
	assert.Equal(t, 120, g.State().Level)
	assert.Positive(t, g.Engine().Board().CountFilled())
}

func TestStartAtOverridesPackageLevel(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	SetStartLevel(30)

	g := NewLevels()
	g.StartAt(12)
	g.Reset(runtimeConfig(5))
	assert.Equal(t, 12, g.State().Level)
}

func TestSameSeedSameSession(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	play := func() Snapshot {
		g := New()
		g.Reset(runtimeConfig(77))
		script := []core.Action{core.ActionLeft, core.ActionUp, core.ActionDrop, core.ActionRight, core.ActionHold, core.ActionDown}
		for i := 0; i < 240; i++ {
			if i%10 == 0 {
				g.Step(frame(script[(i/10)%len(script)]))
			} else {
				g.Step(frame())
			}
		}
		return g.Snapshot()
	}
	assert.True(t, play().Equal(play()))
}

func TestRender(t *testing.T) {
	useConfig(t, "board: {width: 10, height: 20}\n")
	g := NewLevels()
	g.Reset(runtimeConfig(1))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Blockfall (Levels)", "Score", "Next", "Hold", "Goal", "Moves", "[1] assist"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderTooSmall(t *testing.T) {
	useConfig(t, "")
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1})
	screen := core.NewScreen(30, 10)

	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")

	before := g.Snapshot()
	g.Step(frame(core.ActionDrop))
	assert.True(t, before.Equal(g.Snapshot()), "simulation waits for a bigger window")

	g.Resize(80, 24)
	g.Step(frame(core.ActionDrop))
	assert.Equal(t, 4, g.Engine().Board().CountFilled())
}
