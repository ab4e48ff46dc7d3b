// Package engine implements the falling-block rules: the shape catalog,
// rotatable pieces, the playfield and the game state machine that ties
// them together. It has no terminal or storage dependencies.
package engine

import (
	"errors"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// ErrInvalidPlacement is returned by Commit when a piece does not fit.
var ErrInvalidPlacement = errors.New("engine: invalid placement")

// Cell is a single board position.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Board is a fixed-size grid of cells. Row 0 is the top of the well.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]Cell, height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds reports whether (x, y) is a committed-cell coordinate.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y). Out-of-range coordinates read as empty.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[y][x]
}

// Filled reports whether (x, y) holds a block.
func (b *Board) Filled(x, y int) bool {
	return b.At(x, y).Filled
}

// Set writes a cell. Out-of-range writes are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if b.InBounds(x, y) {
		b.cells[y][x] = c
	}
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	c := NewBoard(b.width, b.height)
	for y := range b.cells {
		copy(c.cells[y], b.cells[y])
	}
	return c
}

// Equal reports whether two boards have the same size and cells.
func (b *Board) Equal(o *Board) bool {
	if o == nil || b.width != o.width || b.height != o.height {
		return false
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// IsValidPosition reports whether piece p fits with its top-left corner at
// (x, y). Cells above the board (negative y) are never collision-checked so
// pieces can spawn above the visible well.
func (b *Board) IsValidPosition(p *Piece, x, y int) bool {
	if y+p.Height() > b.height {
		return false
	}
	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			if !p.FilledAt(col, row) {
				continue
			}
			bx, by := x+col, y+row
			if bx < 0 || bx >= b.width {
				return false
			}
			if by >= 0 && b.cells[by][bx].Filled {
				return false
			}
		}
	}
	return true
}

// Commit writes the filled cells of p at (x, y) into the board. Cells that
// land above the top edge are dropped. The board is left untouched and
// ErrInvalidPlacement returned when the placement is not valid.
func (b *Board) Commit(p *Piece, x, y int) error {
	if !b.IsValidPosition(p, x, y) {
		return ErrInvalidPlacement
	}
	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			if p.FilledAt(col, row) && y+row >= 0 {
				b.cells[y+row][x+col] = Cell{Filled: true, Color: p.Color}
			}
		}
	}
	return nil
}

// IsRowComplete reports whether every cell in row y is filled.
func (b *Board) IsRowComplete(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, c := range b.cells[y] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// CompleteRows lists complete rows in descending index order.
func (b *Board) CompleteRows() []int {
	var rows []int
	for y := b.height - 1; y >= 0; y-- {
		if b.IsRowComplete(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearCompleteRows removes every complete row, shifting the rows above
// down and inserting empty rows at the top. It returns the indices of the
// removed rows as they were before clearing, in descending order.
func (b *Board) ClearCompleteRows() []int {
	rows := b.CompleteRows()
	if len(rows) == 0 {
		return nil
	}

	kept := make([][]Cell, 0, b.height)
	for y := 0; y < b.height; y++ {
		if !b.IsRowComplete(y) {
			kept = append(kept, b.cells[y])
		}
	}
	fresh := make([][]Cell, 0, b.height)
	for range rows {
		fresh = append(fresh, make([]Cell, b.width))
	}
	b.cells = append(fresh, kept...)
	return rows
}

// ClearRow removes row y regardless of its contents, shifting everything
// above it down by one and inserting an empty row at index 0.
func (b *Board) ClearRow(y int) {
	if y < 0 || y >= b.height {
		return
	}
	copy(b.cells[1:y+1], b.cells[0:y])
	b.cells[0] = make([]Cell, b.width)
}

// ColumnHeight returns the board height minus the topmost filled row of
// column x, or 0 for an empty column.
func (b *Board) ColumnHeight(x int) int {
	if x < 0 || x >= b.width {
		return 0
	}
	for y := 0; y < b.height; y++ {
		if b.cells[y][x].Filled {
			return b.height - y
		}
	}
	return 0
}

// Heights returns ColumnHeight for every column.
func (b *Board) Heights() []int {
	h := make([]int, b.width)
	for x := range h {
		h[x] = b.ColumnHeight(x)
	}
	return h
}

// Holes counts empty cells that have at least one filled cell above them
// in the same column.
func (b *Board) Holes() int {
	holes := 0
	for x := 0; x < b.width; x++ {
		covered := false
		for y := 0; y < b.height; y++ {
			switch {
			case b.cells[y][x].Filled:
				covered = true
			case covered:
				holes++
			}
		}
	}
	return holes
}

// Bumpiness sums the absolute height differences of adjacent columns.
func (b *Board) Bumpiness() int {
	h := b.Heights()
	bump := 0
	for x := 1; x < len(h); x++ {
		bump += core.Abs(h[x] - h[x-1])
	}
	return bump
}

// CountFilled returns the number of filled cells.
func (b *Board) CountFilled() int {
	n := 0
	for y := range b.cells {
		for _, c := range b.cells[y] {
			if c.Filled {
				n++
			}
		}
	}
	return n
}

// String renders the board as '#' and '.' rows, mostly for tests and logs.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range b.cells[y] {
			if c.Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseBoard builds a board from '#'/'.' rows. Every row must have the same
// length. Filled cells get the given color.
func ParseBoard(color core.Color, rows ...string) *Board {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	b := NewBoard(width, len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch != '.' && ch != ' ' {
				b.cells[y][x] = Cell{Filled: true, Color: color}
			}
		}
	}
	return b
}
