package model

import "fmt"

// TileKind identifies one of the 24 Metro tile designs, lettered a to x
type TileKind int

// NoTile marks an empty hand or an empty board cell
const NoTile TileKind = -1

// KindCount is the number of distinct tile kinds
const KindCount = 24

// connectivity assigns each edge point (in Edge order) to a path group.
// The two edge points sharing a group are joined by a track across the tile.
var connectivity = [KindCount][EdgeCount]int{
	{1, 2, 3, 4, 2, 1, 4, 3}, // a
	{1, 1, 2, 3, 4, 4, 3, 2}, // b
	{1, 2, 3, 3, 2, 1, 4, 4}, // c
	{1, 2, 2, 3, 3, 1, 4, 4}, // d
	{1, 2, 3, 3, 2, 4, 4, 1}, // e
	{1, 2, 2, 3, 4, 4, 3, 1}, // f
	{1, 1, 2, 3, 3, 2, 4, 4}, // g
	{1, 1, 2, 2, 3, 4, 4, 3}, // h
	{1, 2, 3, 3, 4, 4, 2, 1}, // i
	{1, 2, 2, 1, 3, 3, 4, 4}, // j
	{1, 1, 2, 2, 3, 3, 4, 4}, // k
	{1, 2, 2, 3, 3, 4, 4, 1}, // l
	{1, 2, 3, 4, 4, 3, 2, 1}, // m
	{1, 2, 2, 1, 3, 4, 4, 3}, // n
	{1, 2, 3, 1, 4, 3, 2, 4}, // o
	{1, 1, 2, 3, 4, 2, 3, 4}, // p
	{1, 2, 3, 1, 4, 4, 2, 3}, // q
	{1, 2, 2, 3, 4, 1, 3, 4}, // r
	{1, 2, 3, 4, 2, 3, 4, 1}, // s
	{1, 2, 3, 4, 4, 1, 2, 3}, // t
	{1, 2, 3, 1, 2, 4, 4, 3}, // u
	{1, 2, 3, 1, 2, 3, 4, 4}, // v
	{1, 2, 3, 3, 4, 1, 2, 4}, // w
	{1, 1, 2, 3, 3, 4, 4, 2}, // x
}

// AllTileKinds returns every tile kind in letter order
func AllTileKinds() []TileKind {
	kinds := make([]TileKind, KindCount)
	for i := range kinds {
		kinds[i] = TileKind(i)
	}
	return kinds
}

// ParseTileKind converts a letter a-x into a tile kind
func ParseTileKind(letter byte) (TileKind, error) {
	if letter < 'a' || letter >= 'a'+KindCount {
		return NoTile, fmt.Errorf("%w: %q", ErrInvalidTileKind, letter)
	}
	return TileKind(letter - 'a'), nil
}

// IsValid returns true if the kind is one of the 24 tile designs
func (k TileKind) IsValid() bool {
	return k >= 0 && k < KindCount
}

// Letter returns the kind's letter, or '0' for NoTile
func (k TileKind) Letter() byte {
	if !k.IsValid() {
		return '0'
	}
	return byte('a' + k)
}

// String returns the kind's letter
func (k TileKind) String() string {
	return string(k.Letter())
}

// Connectivity returns the path group of every edge point
func (k TileKind) Connectivity() [EdgeCount]int {
	if !k.IsValid() {
		return [EdgeCount]int{}
	}
	return connectivity[k]
}

// Exit returns the edge joined to entry by a track across this tile
func (k TileKind) Exit(entry Edge) (Edge, bool) {
	if !k.IsValid() || entry < 0 || entry >= EdgeCount {
		return entry, false
	}
	paths := connectivity[k]
	group := paths[entry]
	for e := Edge(0); e < EdgeCount; e++ {
		if e != entry && paths[e] == group {
			return e, true
		}
	}
	return entry, false
}

// Tile is a single game piece, either held in a hand or placed on the board
type Tile struct {
	Kind     TileKind
	ID       int // Placement order, stamped when placed
	Owner    int // Player credited with the tile
	Position Position
	Placed   bool
}

// NewTile creates an unplaced tile of the given kind
func NewTile(kind TileKind) *Tile {
	return &Tile{Kind: kind}
}

// Place stamps the tile's position, id and owner. A tile can only be placed once.
func (t *Tile) Place(pos Position, id, owner int) error {
	if t.Placed {
		return ErrTileAlreadyPlaced
	}
	t.Position = pos
	t.ID = id
	t.Owner = owner
	t.Placed = true
	return nil
}

// Exit returns the edge joined to entry on this tile
func (t *Tile) Exit(entry Edge) (Edge, bool) {
	return t.Kind.Exit(entry)
}
