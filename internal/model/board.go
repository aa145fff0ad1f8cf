package model

// Board is the grid of placed tiles
type Board struct {
	Rows  int
	Cols  int
	Cells [][]*Tile // Row-major: Cells[x][y], nil means empty
}

// NewBoard creates an empty board of the given size
func NewBoard(rows, cols int) *Board {
	cells := make([][]*Tile, rows)
	for i := range cells {
		cells[i] = make([]*Tile, cols)
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// Get returns the tile at the given position, or nil if empty or off the board
func (b *Board) Get(pos Position) *Tile {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return b.Cells[pos.X][pos.Y]
}

// Set places a tile at the given position
func (b *Board) Set(pos Position, tile *Tile) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.X][pos.Y] = tile
	}
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == nil
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Rows && pos.Y >= 0 && pos.Y < b.Cols
}

// IsTerminal returns true if the position is in the ring of terminals around the board
func (b *Board) IsTerminal(pos Position) bool {
	return pos.X == -1 || pos.Y == -1 || pos.X == b.Rows || pos.Y == b.Cols
}

// IsBorder returns true if the cell touches at least one terminal
func (b *Board) IsBorder(pos Position) bool {
	return pos.X == 0 || pos.Y == 0 || pos.X == b.Rows-1 || pos.Y == b.Cols-1
}

// IsCorner returns true if the cell touches two terminals
func (b *Board) IsCorner(pos Position) bool {
	return (pos.X == 0 || pos.X == b.Rows-1) && (pos.Y == 0 || pos.Y == b.Cols-1)
}

// IsFull returns true if all cells are filled
func (b *Board) IsFull() bool {
	return b.EmptyCount() == 0
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for x := 0; x < b.Rows; x++ {
		for y := 0; y < b.Cols; y++ {
			if b.Cells[x][y] == nil {
				count++
			}
		}
	}
	return count
}

// PlacedCount returns the number of occupied cells
func (b *Board) PlacedCount() int {
	return b.Rows*b.Cols - b.EmptyCount()
}

// InteriorEmptyCount returns the number of empty cells that touch no terminal.
// Two-row boards have no interior.
func (b *Board) InteriorEmptyCount() int {
	if b.Rows == 2 {
		return 0
	}
	count := 0
	for x := 1; x < b.Rows-1; x++ {
		for y := 1; y < b.Cols-1; y++ {
			if b.Cells[x][y] == nil {
				count++
			}
		}
	}
	return count
}

// HasOccupiedNeighbor returns true if any orthogonal neighbor holds a tile
func (b *Board) HasOccupiedNeighbor(pos Position) bool {
	for _, n := range pos.Neighbors() {
		if b.Get(n) != nil {
			return true
		}
	}
	return false
}

// Kinds returns the tile kind ordinal of every cell, -1 for empty cells
func (b *Board) Kinds() [][]int {
	result := make([][]int, b.Rows)
	for x := 0; x < b.Rows; x++ {
		result[x] = make([]int, b.Cols)
		for y := 0; y < b.Cols; y++ {
			if tile := b.Cells[x][y]; tile != nil {
				result[x][y] = int(tile.Kind)
			} else {
				result[x][y] = int(NoTile)
			}
		}
	}
	return result
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := NewBoard(b.Rows, b.Cols)
	for x := 0; x < b.Rows; x++ {
		for y := 0; y < b.Cols; y++ {
			if tile := b.Cells[x][y]; tile != nil {
				t := *tile
				clone.Cells[x][y] = &t
			}
		}
	}
	return clone
}
