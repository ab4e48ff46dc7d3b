package blockfall

import "github.com/vovakirdan/blockfall/internal/games/blockfall/engine"

// Snapshot captures the session state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Engine    engine.Snapshot
	Level     int
	Outcome   Outcome
	MovesLeft int
	Banked    int
	Inventory Inventory
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Mode:      g.mode,
		Outcome:   g.outcome,
		Banked:    g.banked,
		Inventory: g.inventory,
	}
	if g.eng != nil {
		s.Engine = g.eng.Snapshot()
	}
	if g.tracker != nil {
		s.Level = g.tracker.Level()
		s.MovesLeft = g.tracker.MovesLeft()
	}
	return s
}

// Equal reports whether two snapshots describe the same session state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Tick == o.Tick &&
		s.Mode == o.Mode &&
		s.Level == o.Level &&
		s.Outcome == o.Outcome &&
		s.MovesLeft == o.MovesLeft &&
		s.Banked == o.Banked &&
		s.Inventory == o.Inventory &&
		s.Engine.Equal(o.Engine)
}
