// Package levelfile reads and writes level descriptors as YAML.
//
// Boards are stored as rows of characters, top row first: '.' is an empty
// cell and every other character is a color code (see codes).
package levelfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
)

// ErrInvalid wraps every validation failure from Parse.
var ErrInvalid = errors.New("invalid level file")

// YAMLLevel is the on-disk layout.
type YAMLLevel struct {
	Level        int        `yaml:"level"`
	Seed         int64      `yaml:"seed,omitempty"`
	Size         YAMLSize   `yaml:"size"`
	Target       YAMLTarget `yaml:"target"`
	AllowedMoves int        `yaml:"allowed_moves"`
	Pattern      string     `yaml:"pattern,omitempty"`
	FillRows     int        `yaml:"fill_rows,omitempty"`
	PatternRows  int        `yaml:"pattern_rows,omitempty"`
	Rows         []string   `yaml:"rows"`

	// Colors remaps single-character codes to color names for
	// hand-written files, e.g. {"r": "bright-red", "@": "orange"}.
	Colors map[string]string `yaml:"colors,omitempty"`
}

// YAMLSize holds board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLTarget holds the win condition.
type YAMLTarget struct {
	Type  string `yaml:"type"`
	Score int    `yaml:"score"`
	Lines int    `yaml:"lines"`
}

var codes = map[core.Color]byte{
	core.ColorDefault: '#',
	core.ColorRed:     'r',
	core.ColorGreen:   'g',
	core.ColorYellow:  'y',
	core.ColorBlue:    'b',
	core.ColorMagenta: 'm',
	core.ColorCyan:    'c',
	core.ColorWhite:   'w',
	core.ColorOrange:  'o',
	core.ColorGray:    'x',
}

func colorCode(c core.Color) byte {
	if b, ok := codes[c]; ok {
		return b
	}
	return '#'
}

func codeColor(b byte) (core.Color, bool) {
	for c, code := range codes {
		if code == b {
			return c, true
		}
	}
	return core.ColorDefault, false
}

// Encode renders d as YAML. seed is recorded for reference and may be 0.
func Encode(d *levelgen.Descriptor, seed int64) ([]byte, error) {
	if d == nil || d.Board == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrInvalid)
	}
	b := d.Board
	yl := YAMLLevel{
		Level:        d.Level,
		Seed:         seed,
		Size:         YAMLSize{W: b.Width(), H: b.Height()},
		Target:       YAMLTarget{Type: d.TargetType.String(), Score: d.ScoreTarget, Lines: d.LinesTarget},
		AllowedMoves: d.AllowedMoves,
		Pattern:      string(d.Pattern),
		FillRows:     d.FillRows,
		PatternRows:  d.PatternRows,
		Rows:         make([]string, b.Height()),
	}
	row := make([]byte, b.Width())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.At(x, y)
			if c.Filled {
				row[x] = colorCode(c.Color)
			} else {
				row[x] = '.'
			}
		}
		yl.Rows[y] = string(row)
	}
	return yaml.Marshal(&yl)
}

// Parse decodes a level file. Block counts are recomputed from the rows.
func Parse(data []byte) (*levelgen.Descriptor, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.Size.W <= 0 || yl.Size.H <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalid, yl.Size.W, yl.Size.H)
	}
	if len(yl.Rows) != yl.Size.H {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalid, len(yl.Rows), yl.Size.H)
	}
	tt, ok := levelgen.ParseTargetType(yl.Target.Type)
	if !ok {
		return nil, fmt.Errorf("%w: target type %q", ErrInvalid, yl.Target.Type)
	}
	if yl.AllowedMoves <= 0 {
		return nil, fmt.Errorf("%w: allowed_moves %d", ErrInvalid, yl.AllowedMoves)
	}
	if tt == levelgen.TargetScore && yl.Target.Score <= 0 {
		return nil, fmt.Errorf("%w: score target %d", ErrInvalid, yl.Target.Score)
	}
	if tt == levelgen.TargetLines && yl.Target.Lines <= 0 {
		return nil, fmt.Errorf("%w: lines target %d", ErrInvalid, yl.Target.Lines)
	}
	pattern := levelgen.Pattern(yl.Pattern)
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: pattern %q", ErrInvalid, yl.Pattern)
	}

	legend, err := parseLegend(yl.Colors)
	if err != nil {
		return nil, err
	}

	board := engine.NewBoard(yl.Size.W, yl.Size.H)
	for y, row := range yl.Rows {
		if len(row) != yl.Size.W {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalid, y, len(row), yl.Size.W)
		}
		for x := 0; x < len(row); x++ {
			if row[x] == '.' {
				continue
			}
			color, ok := legend[row[x]]
			if !ok {
				color, ok = codeColor(row[x])
			}
			if !ok {
				return nil, fmt.Errorf("%w: row %d: unknown color code %q", ErrInvalid, y, row[x])
			}
			board.Set(x, y, engine.Cell{Filled: true, Color: color})
		}
	}
	if rows := board.CompleteRows(); len(rows) > 0 {
		return nil, fmt.Errorf("%w: row %d is already complete", ErrInvalid, rows[0])
	}

	d := &levelgen.Descriptor{
		Level:        max(1, yl.Level),
		Board:        board,
		TargetType:   tt,
		ScoreTarget:  yl.Target.Score,
		LinesTarget:  yl.Target.Lines,
		AllowedMoves: yl.AllowedMoves,
		Pattern:      pattern,
		FillRows:     yl.FillRows,
		PatternRows:  yl.PatternRows,
	}
	// Rows above the base are counted as pattern blocks.
	top := yl.Size.H - yl.FillRows
	for y := 0; y < yl.Size.H; y++ {
		n := strings.Count(yl.Rows[y], ".")
		filled := yl.Size.W - n
		if y >= top {
			d.BaseBlocks += filled
		} else {
			d.PatternBlocks += filled
		}
	}
	return d, nil
}

func parseLegend(colors map[string]string) (map[byte]core.Color, error) {
	legend := make(map[byte]core.Color, len(colors))
	for code, name := range colors {
		if len(code) != 1 || code == "." {
			return nil, fmt.Errorf("%w: color code %q", ErrInvalid, code)
		}
		c, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w: color %q", ErrInvalid, name)
		}
		legend[code[0]] = c
	}
	return legend, nil
}

// Load reads and parses the file at path.
func Load(path string) (*levelgen.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path, creating parent directories.
func Save(path string, d *levelgen.Descriptor, seed int64) error {
	data, err := Encode(d, seed)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}
