// Package config provides YAML-based game configuration loading and
// difficulty presets for blockfall.
package config

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/ai"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
)

// BlockfallConfig contains all configuration for the game.
type BlockfallConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Gravity  GravityConfig  `yaml:"gravity"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	AI       AIConfig       `yaml:"ai"`
	Powerups PowerupsConfig `yaml:"powerups"`
	Levels   levelgen.Table `yaml:"levels"`
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig defines the fall interval curve, in milliseconds.
type GravityConfig struct {
	BaseMS     int  `yaml:"base_ms"`
	StepMS     int  `yaml:"step_ms"` // subtracted per level
	MinMS      int  `yaml:"min_ms"`
	StartLevel int  `yaml:"start_level"`
	Fixed      bool `yaml:"fixed"` // keep the start level's interval
}

// ScoringConfig defines drop bonuses and the line-clear table.
type ScoringConfig struct {
	SoftDrop           int   `yaml:"soft_drop"`
	HardDropMultiplier int   `yaml:"hard_drop_multiplier"`
	Lines              []int `yaml:"lines"` // award for 1, 2, 3... rows; the last entry caps
}

// AIConfig defines auto-play speed and heuristic weights.
type AIConfig struct {
	Speed   int        `yaml:"speed"` // 1..10
	Weights ai.Weights `yaml:"weights"`
}

// PowerupsConfig defines the starting powerup inventory.
type PowerupsConfig struct {
	AIAssist int `yaml:"ai_assist"`
	ClearRow int `yaml:"clear_row"`
}

// EngineSettings converts the config into engine rules.
func (c BlockfallConfig) EngineSettings() engine.Settings {
	return engine.Settings{
		Width:              c.Board.Width,
		Height:             c.Board.Height,
		BaseInterval:       time.Duration(c.Gravity.BaseMS) * time.Millisecond,
		IntervalStep:       time.Duration(c.Gravity.StepMS) * time.Millisecond,
		MinInterval:        time.Duration(c.Gravity.MinMS) * time.Millisecond,
		StartLevel:         c.Gravity.StartLevel,
		FixedGravity:       c.Gravity.Fixed,
		SoftDropBonus:      c.Scoring.SoftDrop,
		HardDropMultiplier: c.Scoring.HardDropMultiplier,
		LineScores:         append([]int(nil), c.Scoring.Lines...),
		AISpeed:            c.AI.Speed,
	}
}
