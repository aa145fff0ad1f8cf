package storage

import (
	"context"
	"fmt"
	"regexp"

	"github.com/mcoot/metrogame/internal/model"
)

// Storage defines the interface for saved game persistence
type Storage interface {
	// SaveGame stores a game under its name, replacing any previous save
	SaveGame(ctx context.Context, game *model.SavedGame) error
	// GetGame returns the game saved under name, or ErrGameNotFound
	GetGame(ctx context.Context, name string) (*model.SavedGame, error)
	// DeleteGame removes a saved game, or returns ErrGameNotFound
	DeleteGame(ctx context.Context, name string) error
	// ListGames summarises every saved game, ordered by name
	ListGames(ctx context.Context) ([]model.GameSummary, error)

	Close() error
}

const maxNameLength = 64

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName checks a game name is safe to use as a file name or key
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLength || !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", model.ErrInvalidGameName, name)
	}
	return nil
}
