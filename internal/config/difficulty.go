package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 6
	default:
		return 1
	}
}

// AISpeedForPreset returns the auto-play speed for a difficulty preset.
func AISpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 3
	case DifficultyHard:
		return 8
	default:
		return 5
	}
}

// IsFixedPreset returns true if the preset disables gravity acceleration.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyBlockfallPreset modifies the config based on a difficulty preset.
func ApplyBlockfallPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	cfg.Gravity.Fixed = IsFixedPreset(preset)
	cfg.Gravity.StartLevel = StartLevelForPreset(preset)
	cfg.AI.Speed = AISpeedForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Powerups.AIAssist = max(cfg.Powerups.AIAssist, 5)
		cfg.Powerups.ClearRow = max(cfg.Powerups.ClearRow, 5)
	case DifficultyHard:
		cfg.Powerups.AIAssist = min(cfg.Powerups.AIAssist, 1)
		cfg.Powerups.ClearRow = min(cfg.Powerups.ClearRow, 1)
	}
}
