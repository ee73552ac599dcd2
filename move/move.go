// Package move defines the Move value that players and the search pass
// around. A move doesn't know whether it is legal; the rules package decides
// that.
package move

import (
	"fmt"
	"strings"

	"github.com/kalevala9/linea/board"
	"github.com/kalevala9/linea/tiles"
)

// MoveType is a type of move; a placement, an exchange, or a pass.
type MoveType uint8

const (
	MoveTypePlace MoveType = iota
	MoveTypeExchange
	MoveTypePass
)

// Placement is a single tile headed for a single coordinate.
type Placement struct {
	Row  int
	Col  int
	Tile tiles.Tile
}

func (p Placement) String() string {
	return fmt.Sprintf("%d,%d %s", p.Row, p.Col, p.Tile)
}

// Move is one player action: an ordered sequence of placements, an exchange
// of tiles, or a pass. It also carries a valuation used by the search to
// order and compare candidates.
type Move struct {
	action     MoveType
	placements []Placement
	// tiles are the surrendered tiles for an exchange.
	tiles     []tiles.Tile
	valuation float32
}

// NewPlacementMove creates a tile placement move.
func NewPlacementMove(placements []Placement) *Move {
	return &Move{action: MoveTypePlace, placements: placements}
}

// NewSinglePlacementMove creates the one-tile move the search uses as its
// primitive.
func NewSinglePlacementMove(row, col int, t tiles.Tile) *Move {
	return &Move{action: MoveTypePlace, placements: []Placement{{Row: row, Col: col, Tile: t}}}
}

// NewPassMove creates a pass.
func NewPassMove() *Move {
	return &Move{action: MoveTypePass}
}

// NewExchangeMove creates an exchange of the given tiles.
func NewExchangeMove(ts []tiles.Tile) *Move {
	return &Move{action: MoveTypeExchange, tiles: ts}
}

// Action returns the move type.
func (m *Move) Action() MoveType {
	return m.action
}

// Placements returns the placement sequence. It is nil unless the move is a
// placement.
func (m *Move) Placements() []Placement {
	return m.placements
}

// TilesPlaced returns how many tiles the move puts on the board.
func (m *Move) TilesPlaced() int {
	return len(m.placements)
}

// Tiles returns the tiles this move consumes from the hand, for any move
// type.
func (m *Move) Tiles() []tiles.Tile {
	if m.action == MoveTypeExchange {
		return m.tiles
	}
	ts := make([]tiles.Tile, len(m.placements))
	for i, p := range m.placements {
		ts[i] = p.Tile
	}
	return ts
}

// Positions returns the target coordinates of a placement move.
func (m *Move) Positions() []board.Pos {
	ps := make([]board.Pos, len(m.placements))
	for i, p := range m.placements {
		ps[i] = board.Pos{Row: p.Row, Col: p.Col}
	}
	return ps
}

// Valuation is the search's running estimate of this move's worth.
func (m *Move) Valuation() float32 {
	return m.valuation
}

func (m *Move) SetValuation(v float32) {
	m.valuation = v
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlace:
		parts := make([]string, len(m.placements))
		for i, p := range m.placements {
			parts[i] = p.String()
		}
		return strings.Join(parts, "; ")
	case MoveTypePass:
		return "(Pass)"
	case MoveTypeExchange:
		return fmt.Sprintf("(exch %s)", tiles.TilesString(m.tiles))
	}
	return "UNHANDLED"
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlace:
		return fmt.Sprintf("<action: place %v valu: %.3f>", m.ShortDescription(), m.valuation)
	case MoveTypePass:
		return fmt.Sprintf("<action: pass valu: %.3f>", m.valuation)
	case MoveTypeExchange:
		return fmt.Sprintf("<action: exchange %v>", tiles.TilesString(m.tiles))
	}
	return "<Unhandled move>"
}
