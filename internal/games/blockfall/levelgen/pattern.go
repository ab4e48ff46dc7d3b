package levelgen

import "github.com/vovakirdan/blockfall/internal/core"

// Pattern names a secondary obstacle layout painted above the base fill.
type Pattern string

const (
	PatternNone         Pattern = ""
	PatternLines        Pattern = "lines"
	PatternHolesMiddle  Pattern = "holes-middle"
	PatternMargins      Pattern = "margins"
	PatternDiagonal     Pattern = "diagonal"
	PatternZigzag       Pattern = "zigzag"
	PatternPyramid      Pattern = "pyramid"
	PatternCheckerboard Pattern = "checkerboard"
)

// Valid reports whether p is a known pattern.
func (p Pattern) Valid() bool {
	_, ok := painters[p]
	return ok || p == PatternNone
}

// painter decides whether column x of pattern row j (0 is the lowest
// pattern row) is filled on a board of the given width.
type painter func(x, j, width int) bool

var painters = map[Pattern]painter{
	// Every other row is solid; the generator punches one gap into it.
	PatternLines: func(x, j, width int) bool {
		return j%2 == 0
	},
	PatternHolesMiddle: func(x, j, width int) bool {
		mid := width / 2
		return x < mid-1 || x > mid+1
	},
	PatternMargins: func(x, j, width int) bool {
		return x < 2 || x >= width-2
	},
	PatternDiagonal: func(x, j, width int) bool {
		return ((x-j)%4+4)%4 == 0
	},
	PatternZigzag: func(x, j, width int) bool {
		return (x/2+j)%2 == 0
	},
	PatternPyramid: func(x, j, width int) bool {
		half := width / 2
		return core.Abs(x-half) <= half-1-2*j
	},
	PatternCheckerboard: func(x, j, width int) bool {
		return (x+j)%2 == 0
	},
}
