package model

// Station tracks the chain of tiles connected to one border terminal
type Station struct {
	Index    int
	Terminal Position
	Exit     Edge // Edge the terminal's track leaves by, into the board
	Cells    []PositionExit
	Owner    int
	Complete bool // Chain has reached another terminal
	Scored   bool
}

// NewStation creates an empty station for the terminal at pos on a rows x cols board
func NewStation(index int, pos Position, rows, cols int) *Station {
	return &Station{
		Index:    index,
		Terminal: pos,
		Exit:     terminalExit(pos, rows),
	}
}

func terminalExit(pos Position, rows int) Edge {
	switch {
	case pos.X == -1:
		return SouthLeft
	case pos.X == rows:
		return NorthRight
	case pos.Y == -1:
		return EastLower
	default:
		return WestUpper
	}
}

// Tail returns the last cell of the chain, or the terminal itself while the chain is empty
func (s *Station) Tail() PositionExit {
	if len(s.Cells) == 0 {
		return PositionExit{Position: s.Terminal, Exit: s.Exit}
	}
	return s.Cells[len(s.Cells)-1]
}

// Started returns true once at least one tile is connected to the terminal
func (s *Station) Started() bool {
	return len(s.Cells) != 0
}

// Len returns the number of cells in the chain
func (s *Station) Len() int {
	return len(s.Cells)
}

// AddCell appends a cell to the chain. Complete stations never grow.
func (s *Station) AddCell(pos Position, exit Edge) {
	if s.Complete {
		return
	}
	s.Cells = append(s.Cells, PositionExit{Position: pos, Exit: exit})
}

// Clone returns a copy of the station that shares no state with it
func (s *Station) Clone() Station {
	clone := *s
	clone.Cells = make([]PositionExit, len(s.Cells))
	copy(clone.Cells, s.Cells)
	return clone
}
