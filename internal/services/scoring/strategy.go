package scoring

import (
	"fmt"

	"github.com/mcoot/metrogame/internal/model"
)

// CaptureBonus is awarded for a one-tile chain whose tile belongs to
// another player
const CaptureBonus = 10

// Strategy computes the award for one complete station
type Strategy interface {
	Score(board *model.Board, station *model.Station) int
}

// StrategyFor returns the strategy for a score type
func StrategyFor(scoreType model.ScoreType) (Strategy, error) {
	switch scoreType {
	case model.ScoreSimple:
		return Simple{}, nil
	case model.ScoreCrossover:
		return Crossover{}, nil
	case model.ScoreTimePlacement:
		return TimePlacement{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidScoreType, scoreType)
	}
}

// Simple awards one point per tile in the chain
type Simple struct{}

func (Simple) Score(board *model.Board, station *model.Station) int {
	if bonus, ok := captureBonus(board, station); ok {
		return bonus
	}
	return station.Len()
}

// Crossover awards one point per tile plus one each time the track
// passes back through a tile it already used
type Crossover struct{}

func (Crossover) Score(board *model.Board, station *model.Station) int {
	if bonus, ok := captureBonus(board, station); ok {
		return bonus
	}
	score := 0
	seen := make(map[model.Position]bool, station.Len())
	for _, cell := range station.Cells {
		score++
		if seen[cell.Position] {
			score++
		}
		seen[cell.Position] = true
	}
	return score
}

// TimePlacement awards the sum of the placement ids along the chain
type TimePlacement struct{}

func (TimePlacement) Score(board *model.Board, station *model.Station) int {
	score := 0
	for _, cell := range station.Cells {
		if tile := board.Get(cell.Position); tile != nil {
			score += tile.ID
		}
	}
	return score
}

func captureBonus(board *model.Board, station *model.Station) (int, bool) {
	if station.Len() != 1 {
		return 0, false
	}
	tile := board.Get(station.Cells[0].Position)
	if tile == nil || tile.Owner == station.Owner {
		return 0, false
	}
	return CaptureBonus, true
}
