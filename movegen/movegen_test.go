package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/kalevala9/linea/game"
	"github.com/kalevala9/linea/tiles"
)

func newTestGame(t *testing.T, seed int64) *game.Game {
	t.Helper()
	g, err := game.NewGame(game.Options{
		Players: []game.PlayerInfo{{Nickname: "alice"}, {Nickname: "bob"}},
		Seed:    seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	g.StartGame()
	return g
}

func sameColor(t tiles.Tile, shapeOffset int) tiles.Tile {
	return tiles.Tile{
		Shape: tiles.Shape((int(t.Shape) + shapeOffset) % tiles.MaxCardinality),
		Color: t.Color,
	}
}

func TestGenAllCandidatesAreValid(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 31)
	gen := NewGenerator(0)
	plays := gen.GenAll(g)
	hand := g.HandFor(g.PlayerOnTurn())
	for _, p := range plays {
		is.NoErr(g.Rules().ValidateMove(g.Board(), hand, p))
		is.Equal(p.TilesPlaced(), 1)
	}
}

func TestGenAllDeterministic(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 31)
	gen := NewGenerator(0)
	first := gen.GenAll(g)
	second := gen.GenAll(g)
	is.Equal(len(first), len(second))
	for i := range first {
		is.Equal(first[i].ShortDescription(), second[i].ShortDescription())
	}
}

func TestGenAllRespectsCap(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 31)
	origin, _ := g.Board().Get(0, 0)
	// A hand of same-color tiles plays on every side of the origin.
	is.NoErr(g.SetHandFor(1, nil))
	is.NoErr(g.SetHandFor(0, []tiles.Tile{
		sameColor(origin, 1), sameColor(origin, 2), sameColor(origin, 3),
	}))

	unlimited := NewGenerator(0).GenAll(g)
	is.True(len(unlimited) > 3)
	capped := NewGenerator(3).GenAll(g)
	is.Equal(len(capped), 3)
	is.Equal(capped[0].ShortDescription(), unlimited[0].ShortDescription())
}

func TestNoPlayableTile(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 37)
	origin, _ := g.Board().Get(0, 0)
	clash := tiles.Tile{
		Shape: tiles.Shape((int(origin.Shape) + 1) % tiles.MaxCardinality),
		Color: tiles.Color((int(origin.Color) + 1) % tiles.MaxCardinality),
	}
	is.NoErr(g.SetHandFor(1, nil))
	is.NoErr(g.SetHandFor(0, []tiles.Tile{clash, clash}))

	gen := NewGenerator(0)
	is.Equal(len(gen.GenAll(g)), 0)
	is.True(!gen.HasAnyPlay(g))
}

func TestHasAnyPlay(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 37)
	origin, _ := g.Board().Get(0, 0)
	is.NoErr(g.SetHandFor(1, nil))
	is.NoErr(g.SetHandFor(0, []tiles.Tile{sameColor(origin, 1)}))
	is.True(NewGenerator(0).HasAnyPlay(g))
}
