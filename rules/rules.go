// Package rules holds the pure validation and scoring logic. Nothing here
// mutates a board, a rack, or a game; the game package commits moves only
// after these checks pass.
package rules

import (
	"errors"
	"sort"

	"github.com/kalevala9/linea/board"
	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/tiles"
)

// The validation errors, in the order the checks run. All of these are
// recoverable: an invalid move leaves the game completely unchanged and the
// caller may retry.
var (
	ErrEmptyMove        = errors.New("the move places no tiles")
	ErrTileNotInHand    = errors.New("the move uses a tile that is not in your hand")
	ErrPositionOccupied = errors.New("a target position is already occupied")
	ErrNotCollinear     = errors.New("placed tiles must share one row or one column")
	ErrNotContiguous    = errors.New("placed tiles must be adjacent to each other")
	ErrDisconnected     = errors.New("the move must connect to tiles already on the board")
	ErrLineConflict     = errors.New("a line must be one color with distinct shapes, or one shape with distinct colors")
)

// Rules is the variant configuration for validation and scoring.
type Rules struct {
	// Cardinality is the attribute cardinality K: the number of shapes,
	// the number of colors, and therefore the maximum line length.
	Cardinality int
	// CompletionBonus awards an extra K points for a line that reaches
	// length K.
	CompletionBonus bool
	// HandOutBonus awards an extra K points for emptying the hand in a
	// single placement.
	HandOutBonus bool
}

// Standard returns the common variant: K=6, both bonuses on.
func Standard() *Rules {
	return &Rules{Cardinality: tiles.MaxCardinality, CompletionBonus: true, HandOutBonus: true}
}

// ValidateMove checks a placement move against the board and the mover's
// hand. Checks run cheapest first and the first failure is returned.
func (ru *Rules) ValidateMove(b *board.Board, hand *tiles.Rack, m *move.Move) error {
	placements := m.Placements()
	if len(placements) == 0 {
		return ErrEmptyMove
	}
	if !hand.Has(m.Tiles()) {
		return ErrTileNotInHand
	}

	// Targets must be distinct and empty.
	targets := make(map[board.Pos]bool, len(placements))
	for _, p := range placements {
		pos := board.Pos{Row: p.Row, Col: p.Col}
		if targets[pos] {
			return ErrPositionOccupied
		}
		if _, occupied := b.Get(p.Row, p.Col); occupied {
			return ErrPositionOccupied
		}
		targets[pos] = true
	}

	// One shared row or one shared column.
	sameRow, sameCol := true, true
	for _, p := range placements[1:] {
		if p.Row != placements[0].Row {
			sameRow = false
		}
		if p.Col != placements[0].Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return ErrNotCollinear
	}

	// The placed tiles themselves must form a contiguous run. Runs that
	// interleave with pre-existing tiles are a variant this engine does
	// not accept.
	if len(placements) > 1 {
		coords := make([]int, len(placements))
		for i, p := range placements {
			if sameRow {
				coords[i] = p.Col
			} else {
				coords[i] = p.Row
			}
		}
		sort.Ints(coords)
		for i := 1; i < len(coords); i++ {
			if coords[i]-coords[i-1] != 1 {
				return ErrNotContiguous
			}
		}
	}

	// Unless this is the very first placement, the move has to touch the
	// existing tiles somewhere.
	if !b.IsEmpty() {
		connected := false
		for _, p := range placements {
			if b.HasNeighbor(p.Row, p.Col) {
				connected = true
				break
			}
		}
		if !connected {
			return ErrDisconnected
		}
	}

	// Finally, every line through a placed tile on the hypothetical
	// post-move board must be internally consistent.
	hypo := hypotheticalBoard(b, placements)
	for _, line := range affectedLines(hypo, placements) {
		if !ru.validLine(line) {
			return ErrLineConflict
		}
	}
	return nil
}

// ScoreMove scores a placement against the post-move board. It must only be
// called with a move that ValidateMove accepted. handSizeBefore is the
// number of tiles the mover held before placing; it feeds the hand-out
// bonus.
func (ru *Rules) ScoreMove(b *board.Board, m *move.Move, handSizeBefore int) int {
	placements := m.Placements()
	hypo := hypotheticalBoard(b, placements)

	score := 0
	for _, line := range affectedLines(hypo, placements) {
		if len(line) <= 1 {
			continue
		}
		score += len(line)
		if ru.CompletionBonus && len(line) == ru.Cardinality {
			score += ru.Cardinality
		}
	}
	// An isolated single placement with no matches is still worth a point.
	if score == 0 {
		score = 1
	}
	if ru.HandOutBonus && len(placements) == handSizeBefore {
		score += ru.Cardinality
	}
	return score
}

// validLine reports whether the tiles form a legal line: all one color with
// pairwise distinct shapes, or all one shape with pairwise distinct colors.
// A line longer than K fails on its own, since a K+1st tile cannot keep
// either attribute pairwise distinct.
func (ru *Rules) validLine(line []board.PlacedTile) bool {
	if len(line) <= 1 {
		return true
	}
	var shapes, colors [tiles.MaxCardinality]int
	for _, pt := range line {
		shapes[pt.Tile.Shape]++
		colors[pt.Tile.Color]++
	}
	distinctShapes, distinctColors := 0, 0
	for i := 0; i < tiles.MaxCardinality; i++ {
		if shapes[i] > 0 {
			distinctShapes++
		}
		if colors[i] > 0 {
			distinctColors++
		}
	}
	if distinctColors == 1 && distinctShapes == len(line) {
		return true
	}
	if distinctShapes == 1 && distinctColors == len(line) {
		return true
	}
	return false
}

func hypotheticalBoard(b *board.Board, placements []move.Placement) *board.Board {
	hypo := b.Copy()
	for _, p := range placements {
		// The placements were checked (or are about to be checked)
		// against occupied squares; Place cannot fail here.
		_ = hypo.Place(p.Row, p.Col, p.Tile)
	}
	return hypo
}

// lineKey identifies a line so one spanning several placed tiles is only
// looked at once: the axis, the fixed perpendicular coordinate, and where
// the run starts.
type lineKey struct {
	axis  board.Axis
	perp  int
	start int
}

// affectedLines returns the deduplicated row- and column-lines through every
// placement, on the given (post-move) board. Only lines longer than one tile
// are returned.
func affectedLines(hypo *board.Board, placements []move.Placement) map[lineKey][]board.PlacedTile {
	lines := make(map[lineKey][]board.PlacedTile)
	for _, p := range placements {
		h := hypo.LineThrough(p.Row, p.Col, board.Horizontal)
		if len(h) > 1 {
			lines[lineKey{board.Horizontal, p.Row, h[0].Pos.Col}] = h
		}
		v := hypo.LineThrough(p.Row, p.Col, board.Vertical)
		if len(v) > 1 {
			lines[lineKey{board.Vertical, p.Col, v[0].Pos.Row}] = v
		}
	}
	return lines
}
