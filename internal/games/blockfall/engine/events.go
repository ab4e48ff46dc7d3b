package engine

import "time"

// Event is a state-change notification emitted by the engine.
// Hosts drain them once per frame with Engine.DrainEvents.
type Event interface {
	engineEvent()
}

// Listener receives events synchronously as they are emitted.
type Listener func(Event)

// GameStartedEvent is emitted on the Ready to Running transition.
type GameStartedEvent struct{}

func (GameStartedEvent) engineEvent() {}

// GamePausedEvent is emitted when play is paused.
type GamePausedEvent struct{}

func (GamePausedEvent) engineEvent() {}

// GameResumedEvent is emitted when play resumes.
type GameResumedEvent struct{}

func (GameResumedEvent) engineEvent() {}

// GameOverEvent is emitted once, when the engine reaches its terminal state.
type GameOverEvent struct {
	Score   int
	Lines   int
	Level   int
	Stopped bool // ended by Stop rather than by topping out
}

func (GameOverEvent) engineEvent() {}

// ScoreChangedEvent carries the new score and the amount added.
type ScoreChangedEvent struct {
	Score int
	Delta int
}

func (ScoreChangedEvent) engineEvent() {}

// LinesClearedEvent reports rows removed by a single lock.
type LinesClearedEvent struct {
	Rows  []int // pre-clear indices, descending
	Total int   // lines cleared so far
}

func (LinesClearedEvent) engineEvent() {}

// LevelChangedEvent reports a new level and its gravity interval.
type LevelChangedEvent struct {
	Level    int
	Interval time.Duration
}

func (LevelChangedEvent) engineEvent() {}

// ShapePlacedEvent is emitted at the end of every lock-in. Move budgets
// count these.
type ShapePlacedEvent struct {
	Kind        Kind
	X, Y        int
	RowsCleared int
}

func (ShapePlacedEvent) engineEvent() {}

// ShapeChangedEvent is emitted when the current, next or held piece changes.
type ShapeChangedEvent struct {
	Current Kind
	Next    Kind
	Held    Kind
	HasHeld bool // Held is meaningful
}

func (ShapeChangedEvent) engineEvent() {}

// AIModeChangedEvent is emitted when auto-play is toggled.
type AIModeChangedEvent struct {
	Enabled bool
}

func (AIModeChangedEvent) engineEvent() {}

// Powerup identifies a collaborator-triggered ability.
type Powerup int

const (
	PowerupAIAssist Powerup = iota
	PowerupClearRow
)

func (p Powerup) String() string {
	switch p {
	case PowerupAIAssist:
		return "ai-assist"
	case PowerupClearRow:
		return "clear-row"
	default:
		return "unknown"
	}
}

// PowerupUsedEvent is emitted after a powerup has taken effect.
type PowerupUsedEvent struct {
	Powerup Powerup
}

func (PowerupUsedEvent) engineEvent() {}
