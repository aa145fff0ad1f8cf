package model

import "fmt"

// Position identifies a cell on the board or a terminal around it.
// X is the row and Y the column; terminals sit at X=-1, X=rows, Y=-1 or Y=cols.
type Position struct {
	X int
	Y int
}

// NewPosition creates a position from a row and column
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Neighbors returns the four orthogonal neighbors (north, east, south, west)
func (p Position) Neighbors() []Position {
	return []Position{
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
	}
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PositionExit is a cell in a station chain together with the edge its track leaves by
type PositionExit struct {
	Position Position
	Exit     Edge
}
