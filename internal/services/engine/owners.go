package engine

import "github.com/mcoot/metrogame/internal/model"

// DeadTerminal marks a terminal that belongs to nobody
const DeadTerminal = 6

// standardOwners lists the owner of every station on an 8x8 board, in
// station order, indexed by player count minus two
var standardOwners = [5][32]int{
	{1, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 0, 1},
	{2, 1, 1, 2, 0, 2, 1, 0, 1, 1, 2, 0, 0, 2, 1, 1, 2, 0, 1, 1, 0, 2, 6, 0, 6, 2, 1, 0, 2, 1, 0, 2},
	{1, 0, 2, 3, 0, 1, 3, 2, 3, 0, 2, 1, 0, 2, 1, 3, 2, 1, 3, 0, 1, 3, 0, 2, 3, 2, 1, 0, 2, 3, 0, 1},
	{4, 2, 1, 0, 4, 2, 3, 0, 3, 1, 0, 4, 4, 3, 1, 2, 3, 0, 0, 1, 2, 3, 6, 2, 6, 1, 2, 4, 3, 0, 1, 4},
	{2, 5, 3, 0, 2, 4, 1, 0, 4, 5, 0, 3, 1, 4, 5, 1, 4, 5, 2, 0, 3, 2, 6, 1, 6, 1, 0, 3, 2, 5, 4, 3},
}

// assignOwners sets the owner of every station
func assignOwners(stations []*model.Station, settings model.GameSettings) {
	if settings.Rows == model.DefaultRows && settings.Cols == model.DefaultCols {
		table := standardOwners[settings.Players-2]
		for i, station := range stations {
			station.Owner = table[i]
		}
		return
	}

	// Deal terminals out round robin clockwise from the north-west corner
	owner := 0
	for _, side := range clockwiseSides(stations, settings.Rows, settings.Cols) {
		for _, station := range side {
			station.Owner = owner
			owner = (owner + 1) % settings.Players
		}
	}
}

// clockwiseSides groups stations into north (west to east), east (north to
// south), south (east to west) and west (south to north)
func clockwiseSides(stations []*model.Station, rows, cols int) [4][]*model.Station {
	var sides [4][]*model.Station
	for _, station := range stations {
		switch pos := station.Terminal; {
		case pos.X == -1:
			sides[0] = append(sides[0], station)
		case pos.Y == cols:
			sides[1] = append(sides[1], station)
		case pos.X == rows:
			sides[2] = append(sides[2], station)
		default:
			sides[3] = append(sides[3], station)
		}
	}
	reverse(sides[2])
	reverse(sides[3])
	return sides
}

func reverse(stations []*model.Station) {
	for i, j := 0, len(stations)-1; i < j; i, j = i+1, j-1 {
		stations[i], stations[j] = stations[j], stations[i]
	}
}
