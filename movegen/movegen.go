// Package movegen generates candidate moves for the search. Single-tile
// moves are the search primitive: one tile from the hand onto one frontier
// square. That bounds branching to hand size times frontier size, and the
// candidate list is capped on top of that.
package movegen

import (
	"github.com/samber/lo"

	"github.com/kalevala9/linea/game"
	"github.com/kalevala9/linea/move"
)

// DefaultMaxCandidates bounds how many candidates a single node of the
// search will consider, in generation order.
const DefaultMaxCandidates = 20

// Generator generates pre-validated candidate moves for the player on turn.
type Generator struct {
	maxCandidates int
}

// NewGenerator creates a generator. maxCandidates <= 0 means
// DefaultMaxCandidates.
func NewGenerator(maxCandidates int) *Generator {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Generator{maxCandidates: maxCandidates}
}

// GenAll returns every valid single-tile move for the player on turn, up to
// the candidate cap. Frontier squares are visited in sorted coordinate order
// and hand tiles in index order, so generation order — and therefore the
// search's tie-breaking — is deterministic.
func (gen *Generator) GenAll(g *game.Game) []*move.Move {
	hand := g.HandFor(g.PlayerOnTurn())
	// Duplicate hand tiles generate identical moves; only distinct tiles
	// matter.
	distinct := lo.Uniq(hand.TilesOn())
	frontier := g.ValidPositions()

	var plays []*move.Move
	for _, t := range distinct {
		for _, pos := range frontier {
			m := move.NewSinglePlacementMove(pos.Row, pos.Col, t)
			if err := g.Rules().ValidateMove(g.Board(), hand, m); err != nil {
				continue
			}
			plays = append(plays, m)
			if len(plays) >= gen.maxCandidates {
				return plays
			}
		}
	}
	return plays
}

// HasAnyPlay reports whether the player on turn has at least one valid
// placement. It short-circuits on the first hit, so it is cheaper than
// GenAll when only playability matters (the shell uses it to suggest an
// exchange or pass).
func (gen *Generator) HasAnyPlay(g *game.Game) bool {
	hand := g.HandFor(g.PlayerOnTurn())
	distinct := lo.Uniq(hand.TilesOn())
	frontier := g.ValidPositions()
	for _, t := range distinct {
		for _, pos := range frontier {
			m := move.NewSinglePlacementMove(pos.Row, pos.Col, t)
			if g.Rules().ValidateMove(g.Board(), hand, m) == nil {
				return true
			}
		}
	}
	return false
}
