package model

import (
	"fmt"
	"strings"
)

// ScoreType selects how completed stations are scored
type ScoreType int

const (
	ScoreSimple        ScoreType = 0 // One point per tile in the chain
	ScoreCrossover     ScoreType = 1 // Extra point each time a track crosses itself
	ScoreTimePlacement ScoreType = 2 // Sum of the placement ids in the chain
)

const (
	MinPlayers = 2
	MaxPlayers = 6
	MinSize    = 2
	MaxSize    = 64

	DefaultPlayers = 4
	DefaultRows    = 8
	DefaultCols    = 8
)

func (s ScoreType) String() string {
	switch s {
	case ScoreSimple:
		return "simple"
	case ScoreCrossover:
		return "crossover"
	case ScoreTimePlacement:
		return "time"
	default:
		return fmt.Sprintf("ScoreType(%d)", int(s))
	}
}

// IsValid returns true for the three known score types
func (s ScoreType) IsValid() bool {
	return s >= ScoreSimple && s <= ScoreTimePlacement
}

// ParseScoreType accepts a score type name or its numeric code
func ParseScoreType(s string) (ScoreType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "0":
		return ScoreSimple, nil
	case "crossover", "1":
		return ScoreCrossover, nil
	case "time", "time-placement", "timeplacement", "2":
		return ScoreTimePlacement, nil
	default:
		return ScoreSimple, fmt.Errorf("%w: %q", ErrInvalidScoreType, s)
	}
}

// GameSettings holds the parameters of a new game
type GameSettings struct {
	Players   int
	Rows      int
	Cols      int
	ScoreType ScoreType
}

// DefaultSettings returns the standard 4 player 8x8 game
func DefaultSettings() GameSettings {
	return GameSettings{
		Players:   DefaultPlayers,
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		ScoreType: ScoreSimple,
	}
}

// Validate checks the settings are playable
func (s GameSettings) Validate() error {
	if s.Players < MinPlayers || s.Players > MaxPlayers {
		return fmt.Errorf("%w: players must be between %d and %d, got %d", ErrInvalidSettings, MinPlayers, MaxPlayers, s.Players)
	}
	if s.Rows < MinSize || s.Cols < MinSize {
		return fmt.Errorf("%w: board must be at least %dx%d, got %dx%d", ErrInvalidSettings, MinSize, MinSize, s.Rows, s.Cols)
	}
	if s.Rows > MaxSize || s.Cols > MaxSize {
		return fmt.Errorf("%w: board must be at most %dx%d, got %dx%d", ErrInvalidSettings, MaxSize, MaxSize, s.Rows, s.Cols)
	}
	if !s.ScoreType.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.ScoreType)
	}
	return nil
}
