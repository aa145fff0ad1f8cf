package model

// TileRecord is the persisted form of a placed tile
type TileRecord struct {
	Kind  TileKind
	ID    int
	Owner int
}

// Snapshot is the persisted subset of a game's state
type Snapshot struct {
	Rows      int
	Cols      int
	Players   int
	Turn      int // Draw-pile activator while the draw pile is active, else the current player
	ScoreType ScoreType
	NextID    int

	Board [][]*TileRecord // Cells[x][y], nil means empty
	Hands []TileKind      // Players+1 entries, the last is the draw pile; NoTile when empty
}

// Settings returns the game settings the snapshot was taken under
func (s *Snapshot) Settings() GameSettings {
	return GameSettings{
		Players:   s.Players,
		Rows:      s.Rows,
		Cols:      s.Cols,
		ScoreType: s.ScoreType,
	}
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Board = make([][]*TileRecord, len(s.Board))
	for x, row := range s.Board {
		clone.Board[x] = make([]*TileRecord, len(row))
		for y, rec := range row {
			if rec != nil {
				r := *rec
				clone.Board[x][y] = &r
			}
		}
	}
	clone.Hands = make([]TileKind, len(s.Hands))
	copy(clone.Hands, s.Hands)
	return &clone
}
