package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// scriptedGame ends after a fixed number of steps and reports one level.
type scriptedGame struct {
	steps   int
	endAt   int
	resets  int
	resized [2]int
	last    core.InputFrame
	pending []core.LevelResult
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	if g.steps == g.endAt {
		g.pending = append(g.pending, core.LevelResult{Level: 2, Score: 300, Lines: 3, Moves: 9})
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: 300, Lines: 3, Level: 2, GameOver: g.steps >= g.endAt}
}

func (g *scriptedGame) DrainLevelResults() []core.LevelResult {
	r := g.pending
	g.pending = nil
	return r
}

func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelSavesResultsOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAt: 3}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	for range 5 {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	if s := scores[0]; s.Score != 300 || s.Lines != 3 || s.Level != 2 {
		t.Errorf("saved %+v", s)
	}

	levels, err := store.RecentLevelResults("scripted", 10)
	if err != nil {
		t.Fatalf("RecentLevelResults: %v", err)
	}
	if len(levels) != 1 || levels[0].Level != 2 || levels[0].Moves != 9 {
		t.Errorf("saved level results %+v", levels)
	}
}

func TestModelKeysReachGame(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	if !game.last.Has(core.ActionDrop) {
		t.Error("drop key did not reach the game")
	}

	m = update(t, m, TickMsg{})
	if game.last.Has(core.ActionDrop) {
		t.Error("input frame not cleared between ticks")
	}

	// Esc mid-game pauses instead of leaving.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Error("esc left a running game")
	}
	m = update(t, m, TickMsg{})
	if !game.last.Has(core.ActionPause) {
		t.Error("esc should pause a running game")
	}
}

func TestModelRestartAndBack(t *testing.T) {
	game := &scriptedGame{endAt: 1}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()
	m = update(t, m, TickMsg{})

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("esc after game over should go back to menu")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 1 {
		t.Errorf("resize restarted the game")
	}
	if game.resized != [2]int{100, 40 - helpHeight} {
		t.Errorf("resized to %v", game.resized)
	}
	if !strings.HasPrefix(m.View(), "scripted") {
		t.Errorf("view does not start with the game screen")
	}
}
