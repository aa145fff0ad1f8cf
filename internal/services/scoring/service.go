package scoring

import (
	"log/slog"

	"github.com/mcoot/metrogame/internal/model"
)

// Service credits completed stations to their owners
type Service struct {
	logger *slog.Logger
}

// New creates a new ScoringService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Apply credits every complete, unscored station to its owner using the
// given score type and marks it scored. Stations owned by nobody in
// 0..len(scores)-1 are marked scored without awarding anything.
// Returns the number of stations scored by this call.
func (s *Service) Apply(board *model.Board, stations []*model.Station, scoreType model.ScoreType, scores []int) (int, error) {
	strategy, err := StrategyFor(scoreType)
	if err != nil {
		return 0, err
	}

	scored := 0
	for _, station := range stations {
		if !station.Complete || station.Scored {
			continue
		}
		station.Scored = true
		scored++

		if station.Owner < 0 || station.Owner >= len(scores) {
			s.logger.Debug("skipping unowned station",
				slog.Int("station", station.Index),
				slog.Int("owner", station.Owner),
			)
			continue
		}

		award := strategy.Score(board, station)
		scores[station.Owner] += award
		s.logger.Debug("station scored",
			slog.Int("station", station.Index),
			slog.Int("owner", station.Owner),
			slog.Int("cells", station.Len()),
			slog.Int("award", award),
		)
	}
	return scored, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Apply(board *model.Board, stations []*model.Station, scoreType model.ScoreType, scores []int) (int, error)
}

var _ ServiceInterface = (*Service)(nil)
