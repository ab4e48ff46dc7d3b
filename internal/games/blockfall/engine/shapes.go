package engine

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Kind identifies one of the seven tetromino prototypes.
type Kind int

const (
	KindO Kind = iota // square
	KindI             // bar
	KindT
	KindJ
	KindL
	KindS
	KindZ
	kindCount
)

var kindNames = [...]string{"O", "I", "T", "J", "L", "S", "Z"}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "?"
	}
	return kindNames[k]
}

// prototypes is the read-only shape catalog. Callers only ever see copies.
var prototypes = [kindCount]*Piece{
	KindO: newPiece(KindO, "##", "##"),
	KindI: newPiece(KindI, "####"),
	KindT: newPiece(KindT, "###", ".#."),
	KindJ: newPiece(KindJ, "#..", "###"),
	KindL: newPiece(KindL, "..#", "###"),
	KindS: newPiece(KindS, ".##", "##."),
	KindZ: newPiece(KindZ, "##.", ".##"),
}

// Palette is the set of colors a random shape can take.
var Palette = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
}

// Kinds lists every catalog entry in order.
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// NewShape returns a fresh copy of the prototype for kind.
func NewShape(kind Kind, color core.Color) *Piece {
	if kind < 0 || kind >= kindCount {
		kind = KindO
	}
	p := prototypes[kind].Clone()
	p.Color = color
	return p
}

// RandomShape picks a prototype and a palette color uniformly from rng and
// returns an independent copy.
func RandomShape(rng *rand.Rand) *Piece {
	kind := Kind(rng.Intn(int(kindCount)))
	color := Palette[rng.Intn(len(Palette))]
	return NewShape(kind, color)
}
