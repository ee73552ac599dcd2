// Package board implements the sparse placement surface. Unlike a crossword
// grid the board has no fixed dimensions; coordinates may go negative and the
// occupied region grows outward from the origin.
package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kalevala9/linea/tiles"
)

// Axis is the direction of a line on the board.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "(horizontal)"
	}
	return "(vertical)"
}

// Pos is a board coordinate.
type Pos struct {
	Row int
	Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ErrPositionOccupied is returned when placing onto an occupied coordinate.
// Callers are expected to have checked first; the rules package guarantees
// this before the game commits a move.
var ErrPositionOccupied = fmt.Errorf("position is already occupied")

// Board maps coordinates to tiles. A coordinate, once occupied, is never
// overwritten or vacated.
type Board struct {
	squares map[Pos]tiles.Tile

	minRow, maxRow int
	minCol, maxCol int
}

// New creates an empty board.
func New() *Board {
	return &Board{squares: make(map[Pos]tiles.Tile)}
}

// Place records the tile at an empty coordinate.
func (b *Board) Place(row, col int, t tiles.Tile) error {
	p := Pos{row, col}
	if _, ok := b.squares[p]; ok {
		return ErrPositionOccupied
	}
	if len(b.squares) == 0 {
		b.minRow, b.maxRow = row, row
		b.minCol, b.maxCol = col, col
	} else {
		b.minRow = min(b.minRow, row)
		b.maxRow = max(b.maxRow, row)
		b.minCol = min(b.minCol, col)
		b.maxCol = max(b.maxCol, col)
	}
	b.squares[p] = t
	return nil
}

// Get returns the tile at the coordinate, if any.
func (b *Board) Get(row, col int) (tiles.Tile, bool) {
	t, ok := b.squares[Pos{row, col}]
	return t, ok
}

// IsEmpty is true iff nothing has ever been placed.
func (b *Board) IsEmpty() bool {
	return len(b.squares) == 0
}

// NumTiles returns the number of occupied coordinates.
func (b *Board) NumTiles() int {
	return len(b.squares)
}

var orthogonal = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// HasNeighbor is true iff any of the 4 orthogonal neighbors is occupied.
func (b *Board) HasNeighbor(row, col int) bool {
	for _, d := range orthogonal {
		if _, ok := b.squares[Pos{row + d.Row, col + d.Col}]; ok {
			return true
		}
	}
	return false
}

// PlacedTile is a tile along with the coordinate it occupies.
type PlacedTile struct {
	Pos  Pos
	Tile tiles.Tile
}

// LineThrough extends from (row, col) in both directions along the axis
// while coordinates are occupied, returning the contiguous run including
// (row, col) itself, in coordinate order. (row, col) must be occupied.
func (b *Board) LineThrough(row, col int, axis Axis) []PlacedTile {
	dr, dc := 0, 1
	if axis == Vertical {
		dr, dc = 1, 0
	}
	r, c := row, col
	for {
		if _, ok := b.squares[Pos{r - dr, c - dc}]; !ok {
			break
		}
		r, c = r-dr, c-dc
	}
	var line []PlacedTile
	for {
		t, ok := b.squares[Pos{r, c}]
		if !ok {
			break
		}
		line = append(line, PlacedTile{Pos: Pos{r, c}, Tile: t})
		r, c = r+dr, c+dc
	}
	return line
}

// Frontier returns every empty coordinate orthogonally adjacent to an
// occupied one, or just the origin if the board is empty. The result is
// sorted by (row, col) so callers iterating it behave deterministically.
func (b *Board) Frontier() []Pos {
	if len(b.squares) == 0 {
		return []Pos{{0, 0}}
	}
	seen := make(map[Pos]bool)
	for p := range b.squares {
		for _, d := range orthogonal {
			n := Pos{p.Row + d.Row, p.Col + d.Col}
			if _, occupied := b.squares[n]; !occupied {
				seen[n] = true
			}
		}
	}
	frontier := make([]Pos, 0, len(seen))
	for p := range seen {
		frontier = append(frontier, p)
	}
	sort.Slice(frontier, func(i, j int) bool {
		if frontier[i].Row != frontier[j].Row {
			return frontier[i].Row < frontier[j].Row
		}
		return frontier[i].Col < frontier[j].Col
	})
	return frontier
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	n := &Board{
		squares: make(map[Pos]tiles.Tile, len(b.squares)),
		minRow:  b.minRow, maxRow: b.maxRow,
		minCol: b.minCol, maxCol: b.maxCol,
	}
	for p, t := range b.squares {
		n.squares[p] = t
	}
	return n
}

// CopyFrom restores this board to the state of another board. Squares only
// ever accumulate during a game, so when restoring to an earlier snapshot it
// is enough to drop the squares the snapshot doesn't have.
func (b *Board) CopyFrom(other *Board) {
	for p := range b.squares {
		if _, ok := other.squares[p]; !ok {
			delete(b.squares, p)
		}
	}
	for p, t := range other.squares {
		b.squares[p] = t
	}
	b.minRow, b.maxRow = other.minRow, other.maxRow
	b.minCol, b.maxCol = other.minCol, other.maxCol
}

// ToDisplayText returns a console representation of the board.
func (b *Board) ToDisplayText() string {
	if b.IsEmpty() {
		return "(empty board)\n"
	}
	var sb strings.Builder
	sb.WriteString("     ")
	for c := b.minCol; c <= b.maxCol; c++ {
		fmt.Fprintf(&sb, "%3d", c)
	}
	sb.WriteString("\n")
	for r := b.minRow; r <= b.maxRow; r++ {
		fmt.Fprintf(&sb, "%4d ", r)
		for c := b.minCol; c <= b.maxCol; c++ {
			if t, ok := b.Get(r, c); ok {
				fmt.Fprintf(&sb, " %s", t)
			} else {
				sb.WriteString("  .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
