// Package zobrist generates zobrist hashes for game positions, used by the
// search's node cache.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/tiles"
)

const bignum = 1<<63 - 2

// Window is the side of the coordinate window the tables cover, centered on
// the origin. Coordinates outside it wrap around; a realistic game never
// gets near the edge, and a wraparound only risks a cache collision, not an
// incorrect game state.
const Window = 64

// Zobrist hashes positions incrementally: each (square, tile) pair has a
// random table entry, and a move XORs its placements' entries plus a turn
// toggle into the running key.
type Zobrist struct {
	theirTurn uint64
	posTable  [][]uint64
}

// Initialize fills the tables with frand-generated values. Call once per
// solver.
func (z *Zobrist) Initialize() {
	numTiles := tiles.MaxCardinality * tiles.MaxCardinality
	z.posTable = make([][]uint64, Window*Window)
	for i := range z.posTable {
		z.posTable[i] = make([]uint64, numTiles)
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

func squareIndex(row, col int) int {
	r := ((row % Window) + Window) % Window
	c := ((col % Window) + Window) % Window
	return r*Window + c
}

// AddMove folds a move into the key: the placements it makes, plus the turn
// toggle. XOR is its own inverse, so applying the same move again removes
// it. A pass contributes only the turn toggle.
func (z *Zobrist) AddMove(key uint64, m *move.Move) uint64 {
	for _, p := range m.Placements() {
		key ^= z.posTable[squareIndex(p.Row, p.Col)][p.Tile.Index()]
	}
	return key ^ z.theirTurn
}
