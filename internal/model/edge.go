package model

// Edge is one of the eight points where a track can cross a tile's border
type Edge int

const (
	NorthLeft Edge = iota
	NorthRight
	EastUpper
	EastLower
	SouthRight
	SouthLeft
	WestLower
	WestUpper
)

// EdgeCount is the number of edge points on a tile
const EdgeCount = 8

var edgeNames = [EdgeCount]string{
	"north-left", "north-right", "east-upper", "east-lower",
	"south-right", "south-left", "west-lower", "west-upper",
}

// String returns the edge's name
func (e Edge) String() string {
	if e < 0 || e >= EdgeCount {
		return "unknown"
	}
	return edgeNames[e]
}

// IsExit reports whether tracks leave a tile through this edge.
// Every path on a tile joins one entry edge to one exit edge.
func (e Edge) IsExit() bool {
	switch e {
	case NorthRight, EastLower, SouthLeft, WestUpper:
		return true
	default:
		return false
	}
}

// Step returns the cell a track reaches after leaving p through this edge.
// Only exit edges lead anywhere.
func (e Edge) Step(p Position) (Position, bool) {
	switch e {
	case NorthRight:
		return Position{X: p.X - 1, Y: p.Y}, true
	case EastLower:
		return Position{X: p.X, Y: p.Y + 1}, true
	case SouthLeft:
		return Position{X: p.X + 1, Y: p.Y}, true
	case WestUpper:
		return Position{X: p.X, Y: p.Y - 1}, true
	default:
		return p, false
	}
}

// Entry returns the edge through which the neighboring tile is entered
// when a track leaves through e.
func (e Edge) Entry() Edge {
	switch e {
	case SouthLeft:
		return NorthLeft
	case NorthRight:
		return SouthRight
	case EastLower:
		return WestLower
	default:
		return EastUpper
	}
}
