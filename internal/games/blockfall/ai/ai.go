// Package ai picks placements for the falling piece by exhaustive search
// over rotations and columns, scoring each resulting board with a linear
// heuristic.
package ai

import (
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// Weights are the coefficients of the placement heuristic.
type Weights struct {
	Height    float64 `yaml:"height"`
	Lines     float64 `yaml:"lines"`
	Holes     float64 `yaml:"holes"`
	Bumpiness float64 `yaml:"bumpiness"`
}

// DefaultWeights returns the tuned reference coefficients.
func DefaultWeights() Weights {
	return Weights{
		Height:    -0.51,
		Lines:     0.76,
		Holes:     -0.36,
		Bumpiness: -0.18,
	}
}

// Features are the board measures the heuristic combines.
type Features struct {
	AggregateHeight int
	CompleteLines   int
	Holes           int
	Bumpiness       int
}

// Evaluate measures a board as it stands. Complete rows are counted but
// not removed, so heights and holes describe the board before clearing.
func Evaluate(b *engine.Board) Features {
	agg := 0
	for _, h := range b.Heights() {
		agg += h
	}
	return Features{
		AggregateHeight: agg,
		CompleteLines:   len(b.CompleteRows()),
		Holes:           b.Holes(),
		Bumpiness:       b.Bumpiness(),
	}
}

// Score combines features linearly.
func (w Weights) Score(f Features) float64 {
	return w.Height*float64(f.AggregateHeight) +
		w.Lines*float64(f.CompleteLines) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness)
}

// Move is one candidate placement.
type Move struct {
	Rotation int
	Column   int
	Row      int
	Features Features
	Score    float64
}

// Planner searches placements with a fixed set of weights. It satisfies
// engine.Planner.
type Planner struct {
	Weights Weights
}

// New returns a planner using w.
func New(w Weights) *Planner {
	return &Planner{Weights: w}
}

// Candidates lists every legal placement of piece on board in search
// order: rotation-major, then column left to right. Neither argument is
// modified.
func (p *Planner) Candidates(board *engine.Board, piece *engine.Piece) []Move {
	var moves []Move
	shape := piece.Clone()
	rotations := shape.Orientations()
	for r := 0; r < rotations; r++ {
		if r > 0 {
			shape.Rotate()
		}
		for x := 0; x+shape.Width() <= board.Width(); x++ {
			if !board.IsValidPosition(shape, x, 0) {
				continue
			}
			y := 0
			for board.IsValidPosition(shape, x, y+1) {
				y++
			}
			trial := board.Clone()
			if err := trial.Commit(shape, x, y); err != nil {
				continue
			}
			f := Evaluate(trial)
			moves = append(moves, Move{
				Rotation: r,
				Column:   x,
				Row:      y,
				Features: f,
				Score:    p.Weights.Score(f),
			})
		}
	}
	return moves
}

// Best returns the highest scoring placement. Ties keep the first found.
// ok is false when the piece fits nowhere.
func (p *Planner) Best(board *engine.Board, piece *engine.Piece) (Move, bool) {
	var best Move
	found := false
	for _, m := range p.Candidates(board, piece) {
		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}
	return best, found
}

// BestMove implements engine.Planner. With no legal placement it returns
// rotation 0 and the spawn column.
func (p *Planner) BestMove(board *engine.Board, piece *engine.Piece) (rotation, column int) {
	m, ok := p.Best(board, piece)
	if !ok {
		return 0, (board.Width() - piece.Width()) / 2
	}
	return m.Rotation, m.Column
}

// BestMove searches with the default weights.
func BestMove(board *engine.Board, piece *engine.Piece) (rotation, column int) {
	return New(DefaultWeights()).BestMove(board, piece)
}
