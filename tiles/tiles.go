// Package tiles contains the tile domain for the game: the shape and color
// attributes, the Tile value itself, the Bag of undrawn tiles and the Rack
// (a player's hand).
package tiles

import (
	"fmt"
	"strings"
)

// MaxCardinality is the number of values each attribute axis has. Both axes
// always have the same cardinality; a game may be configured to use fewer
// values, but never more.
const MaxCardinality = 6

// Shape is one of the tile shape attributes.
type Shape uint8

const (
	Star Shape = iota
	EightStar
	Square
	Circle
	Clover
	Diamond
)

var shapeLetters = [MaxCardinality]byte{'S', 'E', 'Q', 'C', 'L', 'D'}
var shapeNames = [MaxCardinality]string{"star", "8star", "square", "circle", "clover", "diamond"}

func (s Shape) String() string {
	if int(s) >= MaxCardinality {
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// Color is one of the tile color attributes.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Orange
	Purple
)

var colorLetters = [MaxCardinality]byte{'R', 'G', 'B', 'Y', 'O', 'P'}
var colorNames = [MaxCardinality]string{"red", "green", "blue", "yellow", "orange", "purple"}

func (c Color) String() string {
	if int(c) >= MaxCardinality {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Tile is an immutable tile value. Two tiles are the same tile iff they have
// the same shape and color; there is no separate identity.
type Tile struct {
	Shape Shape
	Color Color
}

// Index returns a dense index for this tile, in [0, MaxCardinality^2).
// It is used by the Rack counts and the zobrist tables.
func (t Tile) Index() int {
	return int(t.Shape)*MaxCardinality + int(t.Color)
}

// TileAtIndex is the inverse of Index.
func TileAtIndex(idx int) Tile {
	return Tile{Shape: Shape(idx / MaxCardinality), Color: Color(idx % MaxCardinality)}
}

// String returns the two-letter user-visible form, color first; e.g. the
// red circle is "RC".
func (t Tile) String() string {
	if int(t.Shape) >= MaxCardinality || int(t.Color) >= MaxCardinality {
		return fmt.Sprintf("??(%d,%d)", t.Shape, t.Color)
	}
	return string([]byte{colorLetters[t.Color], shapeLetters[t.Shape]})
}

// ParseTile parses the two-letter form produced by Tile.String. It accepts
// lowercase input.
func ParseTile(s string) (Tile, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Tile{}, fmt.Errorf("tile must be two letters (color then shape), got %q", s)
	}
	var t Tile
	found := false
	for i, l := range colorLetters {
		if s[0] == l {
			t.Color = Color(i)
			found = true
			break
		}
	}
	if !found {
		return Tile{}, fmt.Errorf("unknown color letter %q", string(s[0]))
	}
	found = false
	for i, l := range shapeLetters {
		if s[1] == l {
			t.Shape = Shape(i)
			found = true
			break
		}
	}
	if !found {
		return Tile{}, fmt.Errorf("unknown shape letter %q", string(s[1]))
	}
	return t, nil
}

// ParseTiles parses a whitespace-separated list of two-letter tile forms.
func ParseTiles(s string) ([]Tile, error) {
	fields := strings.Fields(s)
	parsed := make([]Tile, len(fields))
	for i, f := range fields {
		t, err := ParseTile(f)
		if err != nil {
			return nil, err
		}
		parsed[i] = t
	}
	return parsed, nil
}

// TilesString renders a slice of tiles as a space-separated string.
func TilesString(ts []Tile) string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = t.String()
	}
	return strings.Join(strs, " ")
}
