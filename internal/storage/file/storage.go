// Package file stores each saved game as a save file in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/savefile"
	"github.com/mcoot/metrogame/internal/storage"
)

// Extension is appended to a game's name to form its file name
const Extension = ".metro"

// Storage keeps one <name>.metro file per game. The file's modification
// time is the game's save time.
type Storage struct {
	dir string
	mu  sync.RWMutex
}

// New creates a file storage rooted at dir, creating the directory if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dir returns the directory games are stored in
func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

func (s *Storage) SaveGame(ctx context.Context, game *model.SavedGame) error {
	if err := storage.ValidateName(game.Name); err != nil {
		return err
	}
	data, err := savefile.Marshal(game.Snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write beside the target and rename so readers never see a partial file
	tmp, err := os.CreateTemp(s.dir, "."+game.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write game %s: %w", game.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write game %s: %w", game.Name, err)
	}
	if !game.SavedAt.IsZero() {
		if err := os.Chtimes(tmp.Name(), game.SavedAt, game.SavedAt); err != nil {
			return fmt.Errorf("storage: cannot stamp game %s: %w", game.Name, err)
		}
	}
	if err := os.Rename(tmp.Name(), s.path(game.Name)); err != nil {
		return fmt.Errorf("storage: cannot save game %s: %w", game.Name, err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, name string) (*model.SavedGame, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readGame(name)
}

func (s *Storage) readGame(name string) (*model.SavedGame, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("storage: cannot open game %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot stat game %s: %w", name, err)
	}
	snapshot, err := savefile.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", name, err)
	}
	return &model.SavedGame{
		Name:     name,
		Snapshot: snapshot,
		SavedAt:  info.ModTime().UTC(),
	}, nil
}

func (s *Storage) DeleteGame(ctx context.Context, name string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.ErrGameNotFound
		}
		return fmt.Errorf("storage: cannot delete game %s: %w", name, err)
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read directory %s: %w", s.dir, err)
	}

	summaries := make([]model.GameSummary, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), Extension)
		if !ok || entry.IsDir() || storage.ValidateName(name) != nil {
			continue
		}
		game, err := s.readGame(name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, game.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// Close is a no-op for file storage
func (s *Storage) Close() error {
	return nil
}
