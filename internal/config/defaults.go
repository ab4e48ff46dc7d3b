package config

import (
	_ "embed"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/ai"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:  15,
			Height: 20,
		},
		Gravity: GravityConfig{
			BaseMS:     500,
			StepMS:     20,
			MinMS:      40,
			StartLevel: 1,
		},
		Scoring: ScoringConfig{
			SoftDrop:           1,
			HardDropMultiplier: 2,
			Lines:              []int{100, 300, 500},
		},
		AI: AIConfig{
			Speed:   5,
			Weights: ai.DefaultWeights(),
		},
		Powerups: PowerupsConfig{
			AIAssist: 3,
			ClearRow: 3,
		},
		Levels: levelgen.DefaultTable(),
	}
}
