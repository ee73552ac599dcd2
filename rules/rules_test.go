package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalevala9/linea/board"
	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/tiles"
)

func mustTile(t *testing.T, s string) tiles.Tile {
	t.Helper()
	tl, err := tiles.ParseTile(s)
	require.NoError(t, err)
	return tl
}

func mustTiles(t *testing.T, s string) []tiles.Tile {
	t.Helper()
	ts, err := tiles.ParseTiles(s)
	require.NoError(t, err)
	return ts
}

// boardWith builds a board from "row,col=TILE" entries.
type placed struct {
	row, col int
	tile     string
}

func boardWith(t *testing.T, ps ...placed) *board.Board {
	t.Helper()
	b := board.New()
	for _, p := range ps {
		require.NoError(t, b.Place(p.row, p.col, mustTile(t, p.tile)))
	}
	return b
}

func placement(t *testing.T, row, col int, tile string) move.Placement {
	t.Helper()
	return move.Placement{Row: row, Col: col, Tile: mustTile(t, tile)}
}

func TestFirstTileOnEmptyBoard(t *testing.T) {
	ru := Standard()
	b := board.New()
	hand := tiles.RackFromTiles(mustTiles(t, "RC GQ"))
	m := move.NewSinglePlacementMove(0, 0, mustTile(t, "RC"))
	assert.NoError(t, ru.ValidateMove(b, hand, m))
	assert.Equal(t, 1, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestExtendByColor(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RQ BD"))
	m := move.NewSinglePlacementMove(0, 1, mustTile(t, "RQ"))
	assert.NoError(t, ru.ValidateMove(b, hand, m))
	assert.Equal(t, 2, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestExtendByShape(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "GC BD"))
	m := move.NewSinglePlacementMove(1, 0, mustTile(t, "GC"))
	assert.NoError(t, ru.ValidateMove(b, hand, m))
	assert.Equal(t, 2, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestDuplicateInLineRejected(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"}, placed{0, 1, "RQ"})
	hand := tiles.RackFromTiles(mustTiles(t, "RC"))
	// A second red circle in the same red row repeats a shape.
	m := move.NewSinglePlacementMove(0, 2, mustTile(t, "RC"))
	assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrLineConflict)
}

func TestNoSharedAttributeRejected(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "GQ"))
	m := move.NewSinglePlacementMove(0, 1, mustTile(t, "GQ"))
	assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrLineConflict)
}

func TestValidationOrder(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RQ RL"))

	t.Run("empty move", func(t *testing.T) {
		m := move.NewPlacementMove(nil)
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrEmptyMove)
	})
	t.Run("tile not in hand beats occupied", func(t *testing.T) {
		// The target is occupied too, but the hand check runs first.
		m := move.NewSinglePlacementMove(0, 0, mustTile(t, "BD"))
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrTileNotInHand)
	})
	t.Run("occupied", func(t *testing.T) {
		m := move.NewSinglePlacementMove(0, 0, mustTile(t, "RQ"))
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrPositionOccupied)
	})
	t.Run("duplicate target", func(t *testing.T) {
		m := move.NewPlacementMove([]move.Placement{
			placement(t, 0, 1, "RQ"),
			placement(t, 0, 1, "RL"),
		})
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrPositionOccupied)
	})
	t.Run("not collinear", func(t *testing.T) {
		m := move.NewPlacementMove([]move.Placement{
			placement(t, 0, 1, "RQ"),
			placement(t, 1, 2, "RL"),
		})
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrNotCollinear)
	})
	t.Run("not contiguous", func(t *testing.T) {
		m := move.NewPlacementMove([]move.Placement{
			placement(t, 0, 1, "RQ"),
			placement(t, 0, 3, "RL"),
		})
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrNotContiguous)
	})
	t.Run("disconnected", func(t *testing.T) {
		m := move.NewSinglePlacementMove(5, 5, mustTile(t, "RQ"))
		assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrDisconnected)
	})
}

func TestMultiTilePlacementOrderIrrelevant(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RQ RL BD"))
	// Listed right-to-left; contiguity is about coordinates, not listing
	// order.
	m := move.NewPlacementMove([]move.Placement{
		placement(t, 0, 2, "RL"),
		placement(t, 0, 1, "RQ"),
	})
	assert.NoError(t, ru.ValidateMove(b, hand, m))
	assert.Equal(t, 3, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestCrossScoring(t *testing.T) {
	ru := Standard()
	// A red row and a circle column meet where the new tile lands.
	b := boardWith(t, placed{0, 0, "RQ"}, placed{1, 1, "GC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RC"))
	m := move.NewSinglePlacementMove(0, 1, mustTile(t, "RC"))
	require.NoError(t, ru.ValidateMove(b, hand, m))
	// Row RQ-RC is 2, column RC-GC is 2.
	assert.Equal(t, 4, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestSharedLineScoredOnce(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RQ RL BD"))
	m := move.NewPlacementMove([]move.Placement{
		placement(t, 0, 1, "RQ"),
		placement(t, 0, 2, "RL"),
	})
	require.NoError(t, ru.ValidateMove(b, hand, m))
	// Both placements sit on the same 3-long row; it counts once.
	assert.Equal(t, 3, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestCompletionBonus(t *testing.T) {
	ru := Standard()
	b := boardWith(t,
		placed{0, 0, "RS"}, placed{0, 1, "RE"}, placed{0, 2, "RQ"},
		placed{0, 3, "RC"}, placed{0, 4, "RL"},
	)
	hand := tiles.RackFromTiles(mustTiles(t, "RD GQ"))
	m := move.NewSinglePlacementMove(0, 5, mustTile(t, "RD"))
	require.NoError(t, ru.ValidateMove(b, hand, m))
	assert.Equal(t, 12, ru.ScoreMove(b, m, hand.NumTiles()))

	ru.CompletionBonus = false
	assert.Equal(t, 6, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestLineLongerThanCardinalityRejected(t *testing.T) {
	ru := Standard()
	b := boardWith(t,
		placed{0, 0, "RS"}, placed{0, 1, "RE"}, placed{0, 2, "RQ"},
		placed{0, 3, "RC"}, placed{0, 4, "RL"}, placed{0, 5, "RD"},
	)
	hand := tiles.RackFromTiles(mustTiles(t, "RS"))
	// A seventh tile cannot keep either attribute pairwise distinct.
	m := move.NewSinglePlacementMove(0, 6, mustTile(t, "RS"))
	assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrLineConflict)
}

func TestHandOutBonus(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RQ RL"))
	m := move.NewPlacementMove([]move.Placement{
		placement(t, 0, 1, "RQ"),
		placement(t, 0, 2, "RL"),
	})
	require.NoError(t, ru.ValidateMove(b, hand, m))
	// Placing the whole hand earns the cardinality on top of the line.
	assert.Equal(t, 3+6, ru.ScoreMove(b, m, hand.NumTiles()))

	ru.HandOutBonus = false
	assert.Equal(t, 3, ru.ScoreMove(b, m, hand.NumTiles()))
}

func TestValidateIsPure(t *testing.T) {
	ru := Standard()
	b := boardWith(t, placed{0, 0, "RC"})
	hand := tiles.RackFromTiles(mustTiles(t, "RQ"))
	m := move.NewSinglePlacementMove(0, 1, mustTile(t, "RQ"))

	err1 := ru.ValidateMove(b, hand, m)
	err2 := ru.ValidateMove(b, hand, m)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 1, b.NumTiles())
	assert.Equal(t, 1, hand.NumTiles())

	// Scoring is pure too: same inputs, same answer.
	assert.Equal(t, ru.ScoreMove(b, m, 6), ru.ScoreMove(b, m, 6))
	assert.Equal(t, 1, b.NumTiles())
}

func TestInnerGapRejected(t *testing.T) {
	ru := Standard()
	// Two tiles with a one-square hole between them, both touching the
	// board, still fail the contiguity check.
	b := boardWith(t, placed{0, 0, "RC"}, placed{0, 1, "RQ"}, placed{0, 2, "RL"})
	hand := tiles.RackFromTiles(mustTiles(t, "GC GL"))
	m := move.NewPlacementMove([]move.Placement{
		placement(t, 1, 0, "GC"),
		placement(t, 1, 2, "GL"),
	})
	assert.ErrorIs(t, ru.ValidateMove(b, hand, m), ErrNotContiguous)
}
