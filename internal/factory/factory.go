package factory

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/mcoot/metrogame/internal/config"
	"github.com/mcoot/metrogame/internal/dependencies/clock"
	"github.com/mcoot/metrogame/internal/dependencies/random"
	"github.com/mcoot/metrogame/internal/services/game"
	"github.com/mcoot/metrogame/internal/services/scoring"
	"github.com/mcoot/metrogame/internal/storage"
	filestorage "github.com/mcoot/metrogame/internal/storage/file"
	"github.com/mcoot/metrogame/internal/storage/memory"
	redisstorage "github.com/mcoot/metrogame/internal/storage/redis"
	sqlitestorage "github.com/mcoot/metrogame/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	Logger *slog.Logger

	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService *scoring.Service
	GameController *game.Controller
}

// New creates a new application with all dependencies wired. A nil
// logger is replaced by one that discards output.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := NewStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage opened", slog.String("type", cfg.Storage.Type))

	var rnd random.Random = random.New()
	if cfg.Game.Seed != 0 {
		rnd = random.NewSeeded(cfg.Game.Seed)
	}

	return newWithDependencies(store, clock.New(), rnd, logger), nil
}

// NewStorage opens the storage backend selected by the config
func NewStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageFile:
		return filestorage.New(cfg.DataDir)
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.GameTTL = cfg.Redis.TTL
		if cfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Redis.PoolSize
		}
		return redisstorage.New(redisCfg)
	case config.StorageSQLite:
		return sqlitestorage.Open(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("invalid storage type %q: must be memory, file, redis or sqlite", cfg.Type)
	}
}

// NewLogger builds the application logger. Text output goes through the
// charm console handler, JSON output through slog's JSON handler.
func NewLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	switch cfg.Format {
	case config.FormatJSON:
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	case config.FormatText, "":
		level, err := charmlog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		handler := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           level,
			ReportTimestamp: true,
			Prefix:          "metro",
		})
		return slog.New(handler), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.Format)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	scoringService := scoring.New(logger)
	gameController := game.NewController(store, scoringService, clk, rnd, logger)

	return &App{
		Logger:         logger,
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		ScoringService: scoringService,
		GameController: gameController,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
