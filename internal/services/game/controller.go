package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mcoot/metrogame/internal/dependencies/clock"
	"github.com/mcoot/metrogame/internal/dependencies/random"
	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/engine"
	"github.com/mcoot/metrogame/internal/services/scoring"
	"github.com/mcoot/metrogame/internal/storage"
)

// generatedNameLength is the length of names made up for unnamed games
const generatedNameLength = 8

// maxNameAttempts bounds retries when a generated name is already taken
const maxNameAttempts = 5

// Controller runs storage-backed games: each operation restores the named
// game into an engine, applies one action and saves the result
type Controller struct {
	storage        storage.Storage
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// State is a stored game as seen after restoring it
type State struct {
	Name     string
	Snapshot *model.Snapshot
	Scores   []int
	Stations []model.Station
	Complete bool
	SavedAt  time.Time
}

// PlaceResult reports the outcome of a successful placement
type PlaceResult struct {
	Tile       model.Tile
	NextPlayer int
	State      *State
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

func (c *Controller) newEngine() *engine.Engine {
	return engine.New(c.random, c.scoringService, c.logger)
}

// CreateGame starts a new game and stores it. An empty name is replaced
// by a generated one.
func (c *Controller) CreateGame(ctx context.Context, name string, settings model.GameSettings) (*State, error) {
	name, err := c.claimName(ctx, name)
	if err != nil {
		return nil, err
	}

	eng := c.newEngine()
	if err := eng.NewGame(settings.Players, settings.Rows, settings.Cols, settings.ScoreType); err != nil {
		return nil, err
	}

	state, err := c.store(ctx, name, eng)
	if err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game", name),
		slog.Int("players", settings.Players),
		slog.Int("rows", settings.Rows),
		slog.Int("cols", settings.Cols),
		slog.String("score_type", settings.ScoreType.String()),
	)
	return state, nil
}

// claimName checks a requested name is free, or generates a free one
func (c *Controller) claimName(ctx context.Context, name string) (string, error) {
	if name != "" {
		if err := c.ensureFree(ctx, name); err != nil {
			return "", err
		}
		return name, nil
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		candidate := c.random.String(generatedNameLength, random.NameAlphabet)
		err := c.ensureFree(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, model.ErrGameExists) {
			return "", err
		}
	}
	return "", model.ErrGameExists
}

func (c *Controller) ensureFree(ctx context.Context, name string) error {
	_, err := c.storage.GetGame(ctx, name)
	switch {
	case err == nil:
		return model.ErrGameExists
	case errors.Is(err, model.ErrGameNotFound):
		return nil
	default:
		return err
	}
}

// GetGame returns the named game
func (c *Controller) GetGame(ctx context.Context, name string) (*State, error) {
	eng, saved, err := c.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.state(name, eng, saved.SavedAt)
}

// Engine restores the named game into a fresh engine
func (c *Controller) Engine(ctx context.Context, name string) (*engine.Engine, error) {
	eng, _, err := c.load(ctx, name)
	return eng, err
}

// PlaceTile places the current player's tile, or the draw pile's tile
// when fromDrawPile is set, and stores the game. Rejected placements are
// not stored.
func (c *Controller) PlaceTile(ctx context.Context, name string, pos model.Position, fromDrawPile bool) (*PlaceResult, error) {
	eng, _, err := c.load(ctx, name)
	if err != nil {
		return nil, err
	}
	if eng.IsComplete() {
		return nil, model.ErrGameComplete
	}

	if fromDrawPile {
		if err := eng.ActivateDrawPile(); err != nil {
			return nil, err
		}
	}
	tile, err := eng.PlaceTile(pos.X, pos.Y)
	if err != nil {
		return nil, err
	}

	state, err := c.store(ctx, name, eng)
	if err != nil {
		return nil, err
	}

	c.logger.Info("tile placed",
		slog.String("game", name),
		slog.String("tile", tile.Kind.String()),
		slog.String("position", pos.String()),
		slog.Int("owner", tile.Owner),
		slog.Int("id", tile.ID),
	)
	if state.Complete {
		c.logger.Info("game completed",
			slog.String("game", name),
			slog.Any("scores", state.Scores),
		)
	}

	return &PlaceResult{
		Tile:       tile,
		NextPlayer: eng.CurrentPlayer(),
		State:      state,
	}, nil
}

// Scores returns every player's score in the named game
func (c *Controller) Scores(ctx context.Context, name string) ([]int, error) {
	eng, _, err := c.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return eng.Scores()
}

// DeleteGame removes the named game
func (c *Controller) DeleteGame(ctx context.Context, name string) error {
	if err := c.storage.DeleteGame(ctx, name); err != nil {
		return err
	}
	c.logger.Info("game deleted", slog.String("game", name))
	return nil
}

// ListGames summarises every stored game
func (c *Controller) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	return c.storage.ListGames(ctx)
}

// ExportGame writes the named game to a save file
func (c *Controller) ExportGame(ctx context.Context, name, path string) error {
	eng, _, err := c.load(ctx, name)
	if err != nil {
		return err
	}
	return eng.SaveGame(path)
}

// ImportGame reads a save file and stores it under name, which must be free
func (c *Controller) ImportGame(ctx context.Context, name, path string) (*State, error) {
	name, err := c.claimName(ctx, name)
	if err != nil {
		return nil, err
	}

	eng := c.newEngine()
	if err := eng.LoadGame(path); err != nil {
		return nil, err
	}

	state, err := c.store(ctx, name, eng)
	if err != nil {
		return nil, err
	}
	c.logger.Info("game imported",
		slog.String("game", name),
		slog.String("path", path),
	)
	return state, nil
}

func (c *Controller) load(ctx context.Context, name string) (*engine.Engine, *model.SavedGame, error) {
	saved, err := c.storage.GetGame(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	eng := c.newEngine()
	if err := eng.Restore(saved.Snapshot); err != nil {
		c.logger.Error("failed to restore game",
			slog.String("game", name),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}
	return eng, saved, nil
}

func (c *Controller) store(ctx context.Context, name string, eng *engine.Engine) (*State, error) {
	snapshot, err := eng.Snapshot()
	if err != nil {
		return nil, err
	}
	saved := &model.SavedGame{
		Name:     name,
		Snapshot: snapshot,
		SavedAt:  c.clock.Now(),
	}
	if err := c.storage.SaveGame(ctx, saved); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return c.state(name, eng, saved.SavedAt)
}

func (c *Controller) state(name string, eng *engine.Engine, savedAt time.Time) (*State, error) {
	scores, err := eng.Scores()
	if err != nil {
		return nil, err
	}
	snapshot, err := eng.Snapshot()
	if err != nil {
		return nil, err
	}
	return &State{
		Name:     name,
		Snapshot: snapshot,
		Scores:   scores,
		Stations: eng.Stations(),
		Complete: eng.IsComplete(),
		SavedAt:  savedAt,
	}, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, name string, settings model.GameSettings) (*State, error)
	GetGame(ctx context.Context, name string) (*State, error)
	PlaceTile(ctx context.Context, name string, pos model.Position, fromDrawPile bool) (*PlaceResult, error)
	Scores(ctx context.Context, name string) ([]int, error)
	DeleteGame(ctx context.Context, name string) error
	ListGames(ctx context.Context) ([]model.GameSummary, error)
	ExportGame(ctx context.Context, name, path string) error
	ImportGame(ctx context.Context, name, path string) (*State, error)
}

var _ ControllerInterface = (*Controller)(nil)
