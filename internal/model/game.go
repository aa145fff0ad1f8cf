package model

import "time"

// SavedGame is a named snapshot held by storage
type SavedGame struct {
	Name     string
	Snapshot *Snapshot
	SavedAt  time.Time
}

// Clone returns a deep copy of the saved game
func (g *SavedGame) Clone() *SavedGame {
	if g == nil {
		return nil
	}
	return &SavedGame{
		Name:     g.Name,
		Snapshot: g.Snapshot.Clone(),
		SavedAt:  g.SavedAt,
	}
}

// GameSummary is a lightweight record of a stored game for listings
type GameSummary struct {
	Name     string
	Players  int
	Rows     int
	Cols     int
	Placed   int
	SavedAt  time.Time
	Complete bool
}

// Summary builds the listing record for a saved game
func (g *SavedGame) Summary() GameSummary {
	summary := GameSummary{
		Name:    g.Name,
		SavedAt: g.SavedAt,
	}
	if s := g.Snapshot; s != nil {
		summary.Players = s.Players
		summary.Rows = s.Rows
		summary.Cols = s.Cols
		for _, row := range s.Board {
			for _, rec := range row {
				if rec != nil {
					summary.Placed++
				}
			}
		}
		summary.Complete = summary.Placed == s.Rows*s.Cols
	}
	return summary
}
