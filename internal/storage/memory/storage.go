package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	games map[string]*model.SavedGame
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[string]*model.SavedGame),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGame(ctx context.Context, game *model.SavedGame) error {
	if err := storage.ValidateName(game.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.Name] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, name string) (*model.SavedGame, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[name]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, name string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[name]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.games, name)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]model.GameSummary, 0, len(s.games))
	for _, game := range s.games {
		summaries = append(summaries, game.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}
