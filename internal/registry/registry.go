// Package registry maps game-mode IDs to factories. Modes register
// themselves from init() so the CLI and menus can list and create them
// without importing each mode directly.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is the interface every playable mode implements.
// Games contain pure logic with no terminal dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "blockfall", "blockfall_ai").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Blockfall (Levels)").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Left, Drop, Pause, etc.).
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// LevelReporter is implemented by games that finish levels. The platform
// drains the results after every step and persists them.
type LevelReporter interface {
	DrainLevelResults() []core.LevelResult
}

// Resizer is implemented by games that can follow a terminal resize
// without a restart. Other games are Reset with the new size.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries []entry
	byID    = make(map[string]int)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry. Modes are listed in
// registration order. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := byID[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	byID[id] = len(entries)
	entries = append(entries, entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	})
}

// List returns all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, len(entries))
	for i, e := range entries {
		result[i] = e.info
	}
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return entries[i].factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := byID[id]
	return ok
}
