package engine

import (
	"log/slog"

	"github.com/mcoot/metrogame/internal/model"
)

// buildStations creates one station per terminal: the north row, then the
// west and east terminals of each row, then the south row
func buildStations(rows, cols int) []*model.Station {
	stations := make([]*model.Station, 0, 2*(rows+cols))
	add := func(x, y int) {
		stations = append(stations, model.NewStation(len(stations), model.NewPosition(x, y), rows, cols))
	}
	for y := 0; y < cols; y++ {
		add(-1, y)
	}
	for x := 0; x < rows; x++ {
		add(x, -1)
		add(x, cols)
	}
	for y := 0; y < cols; y++ {
		add(rows, y)
	}
	return stations
}

// northSouthStation returns the terminal above or below a cell in the top or bottom row
func (g *state) northSouthStation(pos model.Position) *model.Station {
	if pos.X == 0 {
		return g.stations[pos.Y]
	}
	return g.stations[pos.Y+2*g.settings.Rows+g.settings.Cols]
}

// westEastStation returns the terminal left or right of a cell in the first or last column
func (g *state) westEastStation(pos model.Position) *model.Station {
	if pos.Y == 0 {
		return g.stations[2*pos.X+g.settings.Cols]
	}
	return g.stations[2*pos.X+g.settings.Cols+1]
}

// neighborStations returns the terminals a border cell touches
func (g *state) neighborStations(pos model.Position) []*model.Station {
	switch {
	case g.board.IsCorner(pos):
		return []*model.Station{g.northSouthStation(pos), g.westEastStation(pos)}
	case pos.X == 0 || pos.X == g.settings.Rows-1:
		return []*model.Station{g.northSouthStation(pos)}
	default:
		return []*model.Station{g.westEastStation(pos)}
	}
}

// stationCell returns the board cell a terminal faces
func (g *state) stationCell(station *model.Station) model.Position {
	pos := station.Terminal
	switch {
	case pos.X == -1:
		return model.NewPosition(0, pos.Y)
	case pos.X == g.settings.Rows:
		return model.NewPosition(g.settings.Rows-1, pos.Y)
	case pos.Y == g.settings.Cols:
		return model.NewPosition(pos.X, g.settings.Cols-1)
	default:
		return model.NewPosition(pos.X, 0)
	}
}

func (g *state) anyStationStarted() bool {
	for _, station := range g.stations {
		if station.Started() {
			return true
		}
	}
	return false
}

// updateStations follows every incomplete station's track as far as the
// placed tiles allow
func (e *Engine) updateStations(g *state) {
	for _, station := range g.stations {
		if station.Complete {
			continue
		}
		e.extendStation(g, station)
	}
}

func (e *Engine) extendStation(g *state, station *model.Station) {
	// A track passes through each tile at most once per path
	limit := g.settings.Rows*g.settings.Cols*4 + 1
	for step := 0; step < limit; step++ {
		tail := station.Tail()
		next, ok := tail.Exit.Step(tail.Position)
		if !ok {
			return
		}
		tile := g.board.Get(next)
		if tile == nil {
			return
		}
		exit, ok := tile.Exit(tail.Exit.Entry())
		if !ok {
			return
		}
		station.AddCell(next, exit)

		if after, ok := exit.Step(next); ok && g.board.IsTerminal(after) {
			station.Complete = true
			e.logger.Debug("station completed",
				slog.Int("station", station.Index),
				slog.Int("owner", station.Owner),
				slog.Int("cells", station.Len()),
			)
			return
		}
	}
	e.logger.Warn("station track did not terminate",
		slog.Int("station", station.Index),
		slog.Int("cells", station.Len()),
	)
}

// Stations returns a copy of every station in station order
func (e *Engine) Stations() []model.Station {
	if e.game == nil {
		return nil
	}
	result := make([]model.Station, len(e.game.stations))
	for i, station := range e.game.stations {
		result[i] = station.Clone()
	}
	return result
}

// StationOwner returns the owner of the given station, -1 if there is no such station
func (e *Engine) StationOwner(index int) int {
	if e.game == nil || index < 0 || index >= len(e.game.stations) {
		return -1
	}
	return e.game.stations[index].Owner
}

// Scores brings the stations up to date, credits newly completed stations
// and returns a copy of every player's score
func (e *Engine) Scores() ([]int, error) {
	if e.game == nil {
		return nil, model.ErrNoGameInProgress
	}
	g := e.game
	e.updateStations(g)
	if _, err := e.scoring.Apply(g.board, g.stations, g.settings.ScoreType, g.scores); err != nil {
		return nil, err
	}
	scores := make([]int, len(g.scores))
	copy(scores, g.scores)
	return scores, nil
}
