package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/metrogame/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.Storage.Type)
	assert.True(t, filepath.IsAbs(cfg.Storage.DataDir), cfg.Storage.DataDir)
	assert.Equal(t, 30*24*time.Hour, cfg.Storage.Redis.TTL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, FormatText, cfg.Output)

	settings, err := cfg.GameSettings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metro.yaml")
	content := `
storage:
  type: redis
  redis:
    url: redis://cache:6379/2
    ttl: 2h
game:
  players: 3
  rows: 6
  cols: 5
  score_type: crossover
output: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, StorageRedis, cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.Redis.URL)
	assert.Equal(t, 2*time.Hour, cfg.Storage.Redis.TTL)
	assert.Equal(t, FormatJSON, cfg.Output)

	settings, err := cfg.GameSettings()
	require.NoError(t, err)
	assert.Equal(t, model.GameSettings{Players: 3, Rows: 6, Cols: 5, ScoreType: model.ScoreCrossover}, settings)
}

func TestEnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("METRO_STORAGE_TYPE", "sqlite")
	t.Setenv("METRO_STORAGE_SQLITE_PATH", "/tmp/metro-test.db")
	t.Setenv("METRO_GAME_PLAYERS", "6")
	t.Setenv("METRO_LOG_LEVEL", "debug")
	t.Setenv("METRO_GAME_SEED", "42")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage.Type)
	assert.Equal(t, "/tmp/metro-test.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, 6, cfg.Game.Players)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Type: StorageMemory},
			Log:     LogConfig{Level: "info", Format: FormatText},
			Game:    GameConfig{Players: 4, Rows: 8, Cols: 8, ScoreType: "simple"},
			Output:  FormatText,
		}
	}
	require.NoError(t, Validate(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown storage", func(c *Config) { c.Storage.Type = "postgres" }},
		{"file without dir", func(c *Config) { c.Storage.Type = StorageFile }},
		{"redis without url", func(c *Config) { c.Storage.Type = StorageRedis }},
		{"sqlite without path", func(c *Config) { c.Storage.Type = StorageSQLite }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad output", func(c *Config) { c.Output = "yaml" }},
		{"too many players", func(c *Config) { c.Game.Players = 7 }},
		{"bad score type", func(c *Config) { c.Game.ScoreType = "golf" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, Validate(c))
		})
	}
}
