// Package sqlite stores saved games in a SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/savefile"
	"github.com/mcoot/metrogame/internal/storage"
)

// Storage manages the SQLite database connection for saved games.
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Storage, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Storage{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Storage) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saved_games (
			name TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_saved_games_saved_at ON saved_games(saved_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.SavedGame) error {
	if err := storage.ValidateName(game.Name); err != nil {
		return err
	}
	data, err := savefile.Marshal(game.Snapshot)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_games (name, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		game.Name, string(data), game.SavedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game %s: %w", game.Name, err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, name string) (*model.SavedGame, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT name, data, saved_at FROM saved_games WHERE name = ?", name)
	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, name string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, "DELETE FROM saved_games WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete game %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete game %s: %w", name, err)
	}
	if n == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, data, saved_at FROM saved_games ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}
	defer rows.Close()

	summaries := []model.GameSummary{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, game.Summary())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}
	return summaries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*model.SavedGame, error) {
	var name, data, savedAt string
	if err := row.Scan(&name, &data, &savedAt); err != nil {
		return nil, err
	}
	snapshot, err := savefile.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", name, err)
	}
	at, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s: bad save time %q", model.ErrInvalidSaveFile, name, savedAt)
	}
	return &model.SavedGame{
		Name:     name,
		Snapshot: snapshot,
		SavedAt:  at,
	}, nil
}
