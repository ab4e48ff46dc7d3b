package blockfall

import "github.com/vovakirdan/blockfall/internal/games/blockfall/engine"

// Inventory holds the powerups left in a session.
type Inventory struct {
	AIAssist int
	ClearRow int
}

// use spends one powerup if any is left and the engine accepts it.
func (inv *Inventory) use(e *engine.Engine, p engine.Powerup) bool {
	switch p {
	case engine.PowerupAIAssist:
		if inv.AIAssist > 0 && e.UseAIAssist() {
			inv.AIAssist--
			return true
		}
	case engine.PowerupClearRow:
		if inv.ClearRow > 0 && e.UseClearRowPowerup() {
			inv.ClearRow--
			return true
		}
	}
	return false
}
