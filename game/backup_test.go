package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/tiles"
)

func TestUnplayRestoresPlacement(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 17)
	origin, _ := g.Board().Get(0, 0)
	t1 := relTile(origin, 1)
	is.NoErr(g.SetHandFor(1, nil))
	is.NoErr(g.SetHandFor(0, []tiles.Tile{t1, relTile(origin, 2)}))

	handBefore := g.HandFor(0).String()
	bagBefore := g.Bag().TilesRemaining()

	g.SetBackupMode(SimulationMode)
	g.SetStateStackLength(1)
	_, err := g.PlayMove(move.NewSinglePlacementMove(0, 1, t1))
	is.NoErr(err)
	is.Equal(g.Board().NumTiles(), 2)
	is.Equal(g.PointsFor(0), 2)
	is.Equal(g.PlayerOnTurn(), 1)

	g.UnplayLastMove()
	is.Equal(g.Board().NumTiles(), 1)
	is.Equal(g.PointsFor(0), 0)
	is.Equal(g.PlayerOnTurn(), 0)
	is.Equal(g.Turn(), 0)
	is.Equal(g.HandFor(0).String(), handBefore)
	is.Equal(g.Bag().TilesRemaining(), bagBefore)
	is.Equal(totalTiles(g), 108)
}

func TestUnplayRestoresTerminalPass(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 23)
	_, err := g.PlayMove(move.NewPassMove())
	is.NoErr(err)

	g.SetBackupMode(SimulationMode)
	g.SetStateStackLength(1)
	// The second pass ends the game and does not advance the turn.
	_, err = g.PlayMove(move.NewPassMove())
	is.NoErr(err)
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.PlayerOnTurn(), 1)

	g.UnplayLastMove()
	is.Equal(g.Playing(), Playing)
	is.Equal(g.ConsecutivePasses(), 1)
	is.Equal(g.PlayerOnTurn(), 1)
}

func TestResetToFirstState(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 29)
	origin, _ := g.Board().Get(0, 0)
	t1 := relTile(origin, 1)
	t2 := relTile(origin, 2)
	is.NoErr(g.SetHandFor(0, nil))
	is.NoErr(g.SetHandFor(1, nil))
	is.NoErr(g.SetHandFor(0, []tiles.Tile{t1}))
	is.NoErr(g.SetHandFor(1, []tiles.Tile{t2}))

	turnBefore := g.Turn()
	g.SetBackupMode(SimulationMode)
	g.SetStateStackLength(2)
	_, err := g.PlayMove(move.NewSinglePlacementMove(0, 1, t1))
	is.NoErr(err)
	_, err = g.PlayMove(move.NewSinglePlacementMove(0, -1, t2))
	is.NoErr(err)
	is.Equal(g.Board().NumTiles(), 3)

	g.ResetToFirstState()
	is.Equal(g.Board().NumTiles(), 1)
	is.Equal(g.Turn(), turnBefore)
	is.Equal(g.PointsFor(0), 0)
	is.Equal(g.PointsFor(1), 0)
}
