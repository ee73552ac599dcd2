package tiles

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func testBag(seed int64) *Bag {
	return NewBag(MaxCardinality, 3, rand.New(rand.NewSource(seed)))
}

func TestBagSize(t *testing.T) {
	is := is.New(t)
	b := testBag(42)
	is.Equal(b.TilesRemaining(), 108)
	is.Equal(b.InitialSize(), 108)
}

func TestBagDeterministicDraws(t *testing.T) {
	is := is.New(t)
	b1 := testBag(7)
	b2 := testBag(7)
	d1, err := b1.Draw(20)
	is.NoErr(err)
	d2, err := b2.Draw(20)
	is.NoErr(err)
	is.Equal(d1, d2)
}

func TestBagDrawTooMany(t *testing.T) {
	is := is.New(t)
	b := testBag(1)
	_, err := b.Draw(109)
	is.True(err != nil)
	is.Equal(b.TilesRemaining(), 108)
}

func TestBagDrawAtMost(t *testing.T) {
	is := is.New(t)
	b := testBag(1)
	_, err := b.Draw(105)
	is.NoErr(err)
	drawn := b.DrawAtMost(6)
	is.Equal(len(drawn), 3)
	is.Equal(b.TilesRemaining(), 0)
	is.Equal(len(b.DrawAtMost(6)), 0)
}

func TestBagExchange(t *testing.T) {
	is := is.New(t)
	b := testBag(3)
	held, err := b.Draw(6)
	is.NoErr(err)
	fresh, err := b.Exchange(held[:4])
	is.NoErr(err)
	is.Equal(len(fresh), 4)
	// Four came out, four went back in.
	is.Equal(b.TilesRemaining(), 102)
}

func TestBagExchangeInsufficient(t *testing.T) {
	is := is.New(t)
	b := testBag(3)
	held, err := b.Draw(108)
	is.NoErr(err)
	_, err = b.Exchange(held[:4])
	is.True(err != nil)
	is.Equal(b.TilesRemaining(), 0)
}

func TestBagRemoveTiles(t *testing.T) {
	is := is.New(t)
	b := testBag(9)
	want := []Tile{
		{Shape: Circle, Color: Red},
		{Shape: Circle, Color: Red},
		{Shape: Diamond, Color: Purple},
	}
	is.NoErr(b.RemoveTiles(want))
	is.Equal(b.TilesRemaining(), 105)
	// Only one red circle is left of the original three.
	is.True(b.RemoveTiles([]Tile{{Shape: Circle, Color: Red}}) == nil)
	is.True(b.RemoveTiles([]Tile{{Shape: Circle, Color: Red}}) != nil)
}

func TestBagPutBack(t *testing.T) {
	is := is.New(t)
	b := testBag(5)
	drawn, err := b.Draw(10)
	is.NoErr(err)
	b.PutBack(drawn)
	is.Equal(b.TilesRemaining(), 108)
}

func TestBagCopy(t *testing.T) {
	is := is.New(t)
	b := testBag(11)
	c := b.Copy()
	_, err := b.Draw(50)
	is.NoErr(err)
	is.Equal(c.TilesRemaining(), 108)
	b.CopyFrom(c)
	is.Equal(b.TilesRemaining(), 108)
}
