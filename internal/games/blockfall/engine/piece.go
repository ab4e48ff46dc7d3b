package engine

import (
	"errors"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// ErrNoRotation is returned by RollbackRotation when there is no pending
// rotation to undo.
var ErrNoRotation = errors.New("engine: no rotation to roll back")

// orientation is one block matrix with its dimensions.
type orientation struct {
	blocks [][]bool
	width  int
	height int
}

func (o orientation) clone() orientation {
	c := orientation{width: o.width, height: o.height, blocks: make([][]bool, len(o.blocks))}
	for i := range o.blocks {
		c.blocks[i] = append([]bool(nil), o.blocks[i]...)
	}
	return c
}

func (o orientation) equal(other orientation) bool {
	if o.width != other.width || o.height != other.height {
		return false
	}
	for r := range o.blocks {
		for c := range o.blocks[r] {
			if o.blocks[r][c] != other.blocks[r][c] {
				return false
			}
		}
	}
	return true
}

// rotated returns the matrix turned 90 degrees clockwise:
// new[i][j] = old[height-1-j][i], with width and height swapped.
func (o orientation) rotated() orientation {
	r := orientation{width: o.height, height: o.width, blocks: make([][]bool, o.width)}
	for i := 0; i < o.width; i++ {
		r.blocks[i] = make([]bool, o.height)
		for j := 0; j < o.height; j++ {
			r.blocks[i][j] = o.blocks[o.height-1-j][i]
		}
	}
	return r
}

// Piece is a falling block group. X and Y are the board coordinates of the
// top-left corner of its matrix; Y may be negative while spawning.
type Piece struct {
	Kind  Kind
	Color core.Color
	X, Y  int

	cur  orientation
	prev *orientation // set by Rotate, cleared by RollbackRotation
}

func newPiece(kind Kind, rows ...string) *Piece {
	o := orientation{height: len(rows), blocks: make([][]bool, len(rows))}
	for r, row := range rows {
		o.width = max(o.width, len(row))
		o.blocks[r] = make([]bool, len(row))
		for c, ch := range row {
			o.blocks[r][c] = ch == '#'
		}
	}
	return &Piece{Kind: kind, cur: o}
}

// Width returns the width of the current orientation.
func (p *Piece) Width() int { return p.cur.width }

// Height returns the height of the current orientation.
func (p *Piece) Height() int { return p.cur.height }

// FilledAt reports whether the matrix cell at column col, row row is set.
func (p *Piece) FilledAt(col, row int) bool {
	if row < 0 || row >= p.cur.height || col < 0 || col >= p.cur.width {
		return false
	}
	return p.cur.blocks[row][col]
}

// Blocks returns a copy of the current block matrix.
func (p *Piece) Blocks() [][]bool {
	return p.cur.clone().blocks
}

// Cells returns the board coordinates of every filled cell at the
// piece's current position.
func (p *Piece) Cells() []core.Point {
	var pts []core.Point
	for r := 0; r < p.cur.height; r++ {
		for c := 0; c < p.cur.width; c++ {
			if p.cur.blocks[r][c] {
				pts = append(pts, core.Point{X: p.X + c, Y: p.Y + r})
			}
		}
	}
	return pts
}

// TopFilledRow returns the board row of the highest filled cell.
func (p *Piece) TopFilledRow() int {
	for r := 0; r < p.cur.height; r++ {
		for c := 0; c < p.cur.width; c++ {
			if p.cur.blocks[r][c] {
				return p.Y + r
			}
		}
	}
	return p.Y + p.cur.height
}

// Rotate turns the piece 90 degrees clockwise and remembers the previous
// orientation for a single RollbackRotation. It never fails; checking the
// result against a board is up to the caller.
func (p *Piece) Rotate() {
	prev := p.cur
	p.prev = &prev
	p.cur = prev.rotated()
}

// CanRollback reports whether a rotation is pending.
func (p *Piece) CanRollback() bool {
	return p.prev != nil
}

// RollbackRotation restores the orientation saved by the last Rotate.
// Only one level of undo is kept.
func (p *Piece) RollbackRotation() error {
	if p.prev == nil {
		return ErrNoRotation
	}
	p.cur = *p.prev
	p.prev = nil
	return nil
}

// Orientations returns the number of distinct orientations the piece
// cycles through under rotation: 1 for the square, 2 for the bar and the
// S/Z pieces, 4 for the rest.
func (p *Piece) Orientations() int {
	start := p.cur
	o := start
	for n := 1; n <= 4; n++ {
		o = o.rotated()
		if o.equal(start) {
			return n
		}
	}
	return 4
}

// Clone returns a deep copy, including any pending rotation.
func (p *Piece) Clone() *Piece {
	c := &Piece{Kind: p.Kind, Color: p.Color, X: p.X, Y: p.Y, cur: p.cur.clone()}
	if p.prev != nil {
		prev := p.prev.clone()
		c.prev = &prev
	}
	return c
}

// SameShape reports whether two pieces have identical matrices.
func (p *Piece) SameShape(o *Piece) bool {
	return o != nil && p.cur.equal(o.cur)
}

// String renders the matrix as '#' and '.' rows.
func (p *Piece) String() string {
	var sb strings.Builder
	for r := 0; r < p.cur.height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < p.cur.width; c++ {
			if p.cur.blocks[r][c] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
