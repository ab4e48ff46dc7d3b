package engine

import "time"

// Snapshot is a deep copy of everything a renderer or test needs.
type Snapshot struct {
	Phase        Phase
	Score        int
	Lines        int
	Level        int
	AIMode       bool
	AISpeed      int
	HasHeld      bool
	FallInterval time.Duration
	Board        *Board
	Current      *Piece
	Next         *Piece
	Held         *Piece // nil until the first hold
	GhostY       int
}

// Snapshot captures the current state. Mutating the result never affects
// the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:        e.phase,
		Score:        e.score,
		Lines:        e.lines,
		Level:        e.level,
		AIMode:       e.aiMode,
		AISpeed:      e.settings.AISpeed,
		HasHeld:      e.hasHeld,
		FallInterval: e.gravity.Interval(),
		Board:        e.Board(),
		Current:      e.Current(),
		Next:         e.Next(),
		Held:         e.Held(),
		GhostY:       e.GhostY(),
	}
}

// Equal reports whether two snapshots describe the same game state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Phase != o.Phase || s.Score != o.Score || s.Lines != o.Lines ||
		s.Level != o.Level || s.AIMode != o.AIMode || s.AISpeed != o.AISpeed ||
		s.HasHeld != o.HasHeld || s.FallInterval != o.FallInterval || s.GhostY != o.GhostY {
		return false
	}
	if !s.Board.Equal(o.Board) {
		return false
	}
	return samePiece(s.Current, o.Current) && samePiece(s.Next, o.Next) && samePiece(s.Held, o.Held)
}

func samePiece(a, b *Piece) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.Color == b.Color && a.X == b.X && a.Y == b.Y && a.SameShape(b)
}
