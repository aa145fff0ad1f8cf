package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/savefile"
	"github.com/mcoot/metrogame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// envelope is the JSON value stored under a game key. Data holds the
// game in save file format.
type envelope struct {
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
	Data    string    `json:"data"`
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGame(ctx context.Context, game *model.SavedGame) error {
	if err := storage.ValidateName(game.Name); err != nil {
		return err
	}
	text, err := savefile.Marshal(game.Snapshot)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{
		Name:    game.Name,
		SavedAt: game.SavedAt,
		Data:    string(text),
	})
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.Name), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), game.Name)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, name string) (*model.SavedGame, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, gameKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return decodeGame(data)
}

func (s *Storage) DeleteGame(ctx context.Context, name string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, gameKey(name))
	pipe.SRem(ctx, gamesIndexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	names, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []model.GameSummary{}, nil
	}
	sort.Strings(names)

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = gameKey(name)
	}

	// Fetch all games in one round trip using MGET
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.GameSummary, 0, len(values))
	var expired []any
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			expired = append(expired, names[i])
			continue
		}
		game, err := decodeGame([]byte(str))
		if err != nil {
			return nil, fmt.Errorf("game %q: %w", names[i], err)
		}
		summaries = append(summaries, game.Summary())
	}

	// Games that expired still sit in the index
	if len(expired) > 0 {
		if err := s.client.SRem(ctx, gamesIndexKey(), expired...).Err(); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

func decodeGame(data []byte) (*model.SavedGame, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSaveFile, err)
	}
	snapshot, err := savefile.Unmarshal([]byte(env.Data))
	if err != nil {
		return nil, err
	}
	return &model.SavedGame{
		Name:     env.Name,
		Snapshot: snapshot,
		SavedAt:  env.SavedAt,
	}, nil
}
