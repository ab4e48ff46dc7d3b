package engine

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Settings holds the tunable rules of a game.
type Settings struct {
	Width  int
	Height int

	// Gravity interval is max(MinInterval, BaseInterval - level*IntervalStep).
	BaseInterval time.Duration
	IntervalStep time.Duration
	MinInterval  time.Duration

	// StartLevel offsets the derived level (lines/10 + StartLevel).
	StartLevel int
	// FixedGravity keeps the gravity interval at the start level's value.
	FixedGravity bool

	SoftDropBonus      int   // per cell moved by a successful soft drop
	HardDropMultiplier int   // per cell skipped by a hard drop
	LineScores         []int // indexed by rows cleared - 1; longer clears use the last entry

	AISpeed int // 1..10
}

// DefaultSettings returns the reference rules: a 15x20 well, 500ms base
// gravity and the flat 100/300/500 line table.
func DefaultSettings() Settings {
	return Settings{
		Width:              15,
		Height:             20,
		BaseInterval:       500 * time.Millisecond,
		IntervalStep:       20 * time.Millisecond,
		MinInterval:        40 * time.Millisecond,
		StartLevel:         1,
		SoftDropBonus:      1,
		HardDropMultiplier: 2,
		LineScores:         []int{100, 300, 500},
		AISpeed:            5,
	}
}

func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.BaseInterval <= 0 {
		s.BaseInterval = d.BaseInterval
	}
	if s.MinInterval <= 0 {
		s.MinInterval = d.MinInterval
	}
	if s.StartLevel < 1 {
		s.StartLevel = 1
	}
	if len(s.LineScores) == 0 {
		s.LineScores = d.LineScores
	}
	s.AISpeed = core.Clamp(s.AISpeed, 1, 10)
	return s
}

// GravityInterval returns the fall interval for a level.
func (s Settings) GravityInterval(level int) time.Duration {
	return max(s.MinInterval, s.BaseInterval-time.Duration(level)*s.IntervalStep)
}

// LineScore returns the award for clearing n rows at once.
func (s Settings) LineScore(n int) int {
	if n <= 0 || len(s.LineScores) == 0 {
		return 0
	}
	return s.LineScores[min(n, len(s.LineScores))-1]
}

// AIInterval maps an AI speed of 1..10 to its move interval:
// 2050ms - 200ms*speed, clamped to [50ms, 2050ms].
func AIInterval(speed int) time.Duration {
	ms := core.Clamp(2050-200*speed, 50, 2050)
	return time.Duration(ms) * time.Millisecond
}
