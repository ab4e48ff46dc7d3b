package levelgen

import "github.com/vovakirdan/blockfall/internal/core"

// TargetType says which counter a level is judged on.
type TargetType int

const (
	TargetScore TargetType = iota
	TargetLines
)

func (t TargetType) String() string {
	if t == TargetLines {
		return "lines"
	}
	return "score"
}

// ParseTargetType converts "score" or "lines" back to a TargetType.
func ParseTargetType(s string) (TargetType, bool) {
	switch s {
	case "score":
		return TargetScore, true
	case "lines":
		return TargetLines, true
	}
	return TargetScore, false
}

// TargetRule selects the target type for the levels of a band.
type TargetRule string

const (
	RuleScore     TargetRule = "score"
	RuleLines     TargetRule = "lines"
	RuleAlternate TargetRule = "alternate" // even levels lines, odd levels score
)

func (r TargetRule) targetFor(level int) TargetType {
	switch r {
	case RuleLines:
		return TargetLines
	case RuleAlternate:
		if level%2 == 0 {
			return TargetLines
		}
	}
	return TargetScore
}

// Band holds the generation parameters for a contiguous range of levels.
// Values between From and To are interpolated linearly across the band.
type Band struct {
	FirstLevel int `yaml:"first_level"`
	// LastLevel of 0 means open-ended; interpolation then runs to
	// InterpolateTo and holds.
	LastLevel     int `yaml:"last_level"`
	InterpolateTo int `yaml:"interpolate_to,omitempty"`

	FillFrom  float64 `yaml:"fill_from"`
	FillTo    float64 `yaml:"fill_to"`
	HolesFrom float64 `yaml:"holes_from"`
	HolesTo   float64 `yaml:"holes_to"`

	Patterns       []Pattern  `yaml:"patterns"`
	PatternRows    int        `yaml:"pattern_rows"`
	Target         TargetRule `yaml:"target"`
	MoveMultiplier float64    `yaml:"move_multiplier"`
}

// progress returns how far level is through the band, in [0, 1].
func (b Band) progress(level int) float64 {
	last := b.LastLevel
	if last == 0 {
		last = b.InterpolateTo
	}
	if last <= b.FirstLevel {
		return 0
	}
	p := float64(level-b.FirstLevel) / float64(last-b.FirstLevel)
	return core.ClampF(p, 0, 1)
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// Table is the full set of level generation constants.
type Table struct {
	MaxFillFraction float64 `yaml:"max_fill_fraction"`
	CeilingFraction float64 `yaml:"ceiling_fraction"`
	MinTopRowHoles  int     `yaml:"min_top_row_holes"`

	ScoreBase     int `yaml:"score_base"`
	ScorePerLevel int `yaml:"score_per_level"`
	ScorePerBlock int `yaml:"score_per_block"`

	LinesBase         int `yaml:"lines_base"`
	LinesLevelDivisor int `yaml:"lines_level_divisor"`
	LinesBlockDivisor int `yaml:"lines_block_divisor"`

	MoveFloor    int `yaml:"move_floor"`
	ScorePerMove int `yaml:"score_per_move"`

	Bands []Band `yaml:"bands"`
}

// DefaultTable returns the reference level table.
func DefaultTable() Table {
	return Table{
		MaxFillFraction:   0.35,
		CeilingFraction:   0.5,
		MinTopRowHoles:    2,
		ScoreBase:         500,
		ScorePerLevel:     40,
		ScorePerBlock:     5,
		LinesBase:         3,
		LinesLevelDivisor: 15,
		LinesBlockDivisor: 25,
		MoveFloor:         20,
		ScorePerMove:      35,
		Bands: []Band{
			{
				FirstLevel: 1, LastLevel: 10,
				FillFrom: 0, FillTo: 0.15,
				HolesFrom: 0.30, HolesTo: 0.25,
				Target:         RuleScore,
				MoveMultiplier: 1.5,
			},
			{
				FirstLevel: 11, LastLevel: 50,
				FillFrom: 0.15, FillTo: 0.25,
				HolesFrom: 0.25, HolesTo: 0.18,
				Patterns:       []Pattern{PatternLines, PatternHolesMiddle, PatternMargins},
				PatternRows:    2,
				Target:         RuleAlternate,
				MoveMultiplier: 1.3,
			},
			{
				FirstLevel: 51, LastLevel: 150,
				FillFrom: 0.25, FillTo: 0.30,
				HolesFrom: 0.18, HolesTo: 0.12,
				Patterns:       []Pattern{PatternDiagonal, PatternZigzag, PatternPyramid, PatternMargins},
				PatternRows:    3,
				Target:         RuleAlternate,
				MoveMultiplier: 1.2,
			},
			{
				FirstLevel: 151, InterpolateTo: 500,
				FillFrom: 0.30, FillTo: 0.35,
				HolesFrom: 0.12, HolesTo: 0.08,
				Patterns:       []Pattern{PatternCheckerboard, PatternPyramid, PatternZigzag, PatternDiagonal, PatternHolesMiddle},
				PatternRows:    4,
				Target:         RuleLines,
				MoveMultiplier: 1.1,
			},
		},
	}
}

// BandFor returns the band covering level. Levels past the last band use
// the last band; levels before the first use the first.
func (t Table) BandFor(level int) Band {
	if len(t.Bands) == 0 {
		return Band{FirstLevel: 1, Target: RuleScore, MoveMultiplier: 1}
	}
	for _, b := range t.Bands {
		if level >= b.FirstLevel && (b.LastLevel == 0 || level <= b.LastLevel) {
			return b
		}
	}
	if level < t.Bands[0].FirstLevel {
		return t.Bands[0]
	}
	return t.Bands[len(t.Bands)-1]
}

// Validate reports an error for a table the generator cannot use.
func (t Table) Validate() error {
	switch {
	case t.MaxFillFraction < 0 || t.MaxFillFraction > 1:
		return errRange("max_fill_fraction")
	case t.CeilingFraction <= 0 || t.CeilingFraction > 1:
		return errRange("ceiling_fraction")
	case t.LinesLevelDivisor <= 0:
		return errRange("lines_level_divisor")
	case t.LinesBlockDivisor <= 0:
		return errRange("lines_block_divisor")
	case t.ScorePerMove <= 0:
		return errRange("score_per_move")
	}
	for i, b := range t.Bands {
		if b.PatternRows > 0 && len(b.Patterns) == 0 {
			return &BandError{Index: i, Reason: "pattern_rows set without patterns"}
		}
		for _, p := range b.Patterns {
			if !p.Valid() {
				return &BandError{Index: i, Reason: "unknown pattern " + string(p)}
			}
		}
	}
	return nil
}
