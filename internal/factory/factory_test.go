package factory

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/metrogame/internal/config"
	"github.com/mcoot/metrogame/internal/model"
	filestorage "github.com/mcoot/metrogame/internal/storage/file"
	"github.com/mcoot/metrogame/internal/storage/memory"
	redisstorage "github.com/mcoot/metrogame/internal/storage/redis"
	sqlitestorage "github.com/mcoot/metrogame/internal/storage/sqlite"
)

func TestNewStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.StorageConfig
		want any
	}{
		{"memory", config.StorageConfig{Type: config.StorageMemory}, &memory.Storage{}},
		{"file", config.StorageConfig{Type: config.StorageFile, DataDir: filepath.Join(t.TempDir(), "saves")}, &filestorage.Storage{}},
		{"sqlite", config.StorageConfig{Type: config.StorageSQLite, SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "metro.db")}}, &sqlitestorage.Storage{}},
		{"redis", config.StorageConfig{Type: config.StorageRedis, Redis: config.RedisConfig{URL: "redis://" + mini.Addr(), TTL: time.Hour}}, &redisstorage.Storage{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStorage(tt.cfg)
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			assert.IsType(t, tt.want, store)

			games, err := store.ListGames(context.Background())
			require.NoError(t, err)
			assert.Empty(t, games)
		})
	}
}

func TestNewStorageInvalidType(t *testing.T) {
	_, err := NewStorage(config.StorageConfig{Type: "tape"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LogConfig{Level: "info", Format: config.FormatText}, &buf)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("station complete", "index", 3)
	assert.Contains(t, buf.String(), "station complete")
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	logger, err = NewLogger(config.LogConfig{Level: "warn", Format: config.FormatJSON}, &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("stack empty")
	assert.Contains(t, buf.String(), `"msg":"stack empty"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerInvalid(t *testing.T) {
	_, err := NewLogger(config.LogConfig{Level: "loud", Format: config.FormatJSON}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewLogger(config.LogConfig{Level: "loud", Format: config.FormatText}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewLogger(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewWiresController(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Type: config.StorageMemory}}
	app, err := New(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	state, err := app.GameController.CreateGame(context.Background(), "family", model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "family", state.Name)

	saved, err := app.Storage.GetGame(context.Background(), "family")
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Snapshot.Players)
}

func TestNewSeededDrawsRepeat(t *testing.T) {
	hands := func() []model.TileKind {
		cfg := &config.Config{
			Storage: config.StorageConfig{Type: config.StorageMemory},
			Game:    config.GameConfig{Seed: 7},
		}
		app, err := New(cfg, nil)
		require.NoError(t, err)
		state, err := app.GameController.CreateGame(context.Background(), "seeded", model.DefaultSettings())
		require.NoError(t, err)
		return state.Snapshot.Hands
	}
	assert.Equal(t, hands(), hands())
}
