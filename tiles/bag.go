package tiles

import (
	"fmt"
	"math/rand"
)

// A Bag is the bag o'tiles. It is shuffled exactly once, at creation; every
// draw after that consumes the predetermined order, so a game is replayable
// given the same rand source.
type Bag struct {
	tiles       []Tile
	initialSize int
}

// NewBag creates a bag containing `copies` of every (shape, color)
// combination over the first `cardinality` values of each axis, shuffled
// with the given rand source.
func NewBag(cardinality, copies int, randSource *rand.Rand) *Bag {
	if cardinality > MaxCardinality {
		cardinality = MaxCardinality
	}
	ts := make([]Tile, 0, cardinality*cardinality*copies)
	for s := 0; s < cardinality; s++ {
		for c := 0; c < cardinality; c++ {
			for i := 0; i < copies; i++ {
				ts = append(ts, Tile{Shape: Shape(s), Color: Color(c)})
			}
		}
	}
	randSource.Shuffle(len(ts), func(i, j int) {
		ts[i], ts[j] = ts[j], ts[i]
	})
	return &Bag{tiles: ts, initialSize: len(ts)}
}

// DrawAtMost draws at most n tiles from the bag. It can draw fewer if there
// are fewer tiles than n, and even draw no tiles at all :o
func (b *Bag) DrawAtMost(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn, _ := b.Draw(n)
	return drawn
}

// Draw draws n tiles from the bag.
func (b *Bag) Draw(n int) ([]Tile, error) {
	if n > len(b.tiles) {
		return nil, fmt.Errorf("tried to draw %v tiles, tile bag has %v",
			n, len(b.tiles))
	}
	drawn := make([]Tile, n)
	copy(drawn, b.tiles[:n])
	b.tiles = b.tiles[n:]
	return drawn, nil
}

// Exchange swaps the given tiles for new ones. The new tiles are drawn
// before the surrendered ones go back in, so an exchange can never hand the
// same tiles straight back.
func (b *Bag) Exchange(ts []Tile) ([]Tile, error) {
	newTiles, err := b.Draw(len(ts))
	if err != nil {
		return nil, err
	}
	b.PutBack(ts)
	return newTiles, nil
}

// PutBack returns the tiles to the bag. The bag is a multiset, not a stack;
// callers may not rely on when these tiles come up again.
func (b *Bag) PutBack(ts []Tile) {
	if len(ts) == 0 {
		return
	}
	b.tiles = append(b.tiles, ts...)
}

// RemoveTiles removes the given tiles from the bag, and returns an error
// if it can't. The remaining draw order is preserved.
func (b *Bag) RemoveTiles(ts []Tile) error {
	for _, t := range ts {
		found := false
		for i := range b.tiles {
			if b.tiles[i] == t {
				b.tiles = append(b.tiles[:i], b.tiles[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("cannot remove %v from the bag, it is not there", t)
		}
	}
	return nil
}

// TilesRemaining returns the count of undrawn tiles.
func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

// InitialSize returns the number of tiles the bag started with.
func (b *Bag) InitialSize() int {
	return b.initialSize
}

// Copy returns a deep copy of this bag.
func (b *Bag) Copy() *Bag {
	ts := make([]Tile, len(b.tiles))
	copy(ts, b.tiles)
	return &Bag{tiles: ts, initialSize: b.initialSize}
}

// CopyFrom copies the remaining tiles from another bag into this bag. It
// should have been created from the Copy function above.
func (b *Bag) CopyFrom(other *Bag) {
	b.tiles = b.tiles[:0]
	b.tiles = append(b.tiles, other.tiles...)
	b.initialSize = other.initialSize
}
