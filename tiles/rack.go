package tiles

// Rack is a player's hand: a bounded multiset of tiles. Counts are kept per
// tile index so membership checks don't allocate.
type Rack struct {
	counts   []uint8
	numTiles int
}

// NewRack creates an empty rack.
func NewRack() *Rack {
	return &Rack{counts: make([]uint8, MaxCardinality*MaxCardinality)}
}

// RackFromTiles creates a rack holding the given tiles.
func RackFromTiles(ts []Tile) *Rack {
	r := NewRack()
	r.Add(ts...)
	return r
}

// Add puts tiles on the rack.
func (r *Rack) Add(ts ...Tile) {
	for _, t := range ts {
		r.counts[t.Index()]++
	}
	r.numTiles += len(ts)
}

// Take removes one copy of the tile from the rack. It returns false, and
// leaves the rack unchanged, if the tile is not there.
func (r *Rack) Take(t Tile) bool {
	if r.counts[t.Index()] == 0 {
		return false
	}
	r.counts[t.Index()]--
	r.numTiles--
	return true
}

// TakeAll removes the given tiles, failing without partial removal if any
// of them (with multiplicity) is missing.
func (r *Rack) TakeAll(ts []Tile) bool {
	if !r.Has(ts) {
		return false
	}
	for _, t := range ts {
		r.counts[t.Index()]--
	}
	r.numTiles -= len(ts)
	return true
}

// Has reports whether every tile in ts, with multiplicity, is on the rack.
func (r *Rack) Has(ts []Tile) bool {
	var need [MaxCardinality * MaxCardinality]uint8
	for _, t := range ts {
		need[t.Index()]++
	}
	for idx, ct := range need {
		if ct > r.counts[idx] {
			return false
		}
	}
	return true
}

// Count returns how many copies of t are on the rack.
func (r *Rack) Count(t Tile) int {
	return int(r.counts[t.Index()])
}

// NumTiles returns the total number of tiles on the rack.
func (r *Rack) NumTiles() int {
	return r.numTiles
}

// TilesOn returns the tiles on the rack in index order.
func (r *Rack) TilesOn() []Tile {
	ts := make([]Tile, 0, r.numTiles)
	for idx, ct := range r.counts {
		for i := uint8(0); i < ct; i++ {
			ts = append(ts, TileAtIndex(idx))
		}
	}
	return ts
}

// Clear empties the rack.
func (r *Rack) Clear() {
	for i := range r.counts {
		r.counts[i] = 0
	}
	r.numTiles = 0
}

// Set replaces the rack contents with the given tiles.
func (r *Rack) Set(ts []Tile) {
	r.Clear()
	r.Add(ts...)
}

// Copy returns a deep copy of this rack.
func (r *Rack) Copy() *Rack {
	n := NewRack()
	copy(n.counts, r.counts)
	n.numTiles = r.numTiles
	return n
}

// CopyFrom copies the contents of another rack into this one.
func (r *Rack) CopyFrom(other *Rack) {
	copy(r.counts, other.counts)
	r.numTiles = other.numTiles
}

// String returns a user-visible version of this rack.
func (r *Rack) String() string {
	return TilesString(r.TilesOn())
}
