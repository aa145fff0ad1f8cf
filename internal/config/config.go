package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcoot/metrogame/internal/model"
)

// EnvPrefix is prepended to environment overrides, e.g. METRO_STORAGE_TYPE
const EnvPrefix = "METRO"

// Storage backends
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Output and log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all configuration for the application
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Game    GameConfig    `mapstructure:"game"`
	Output  string        `mapstructure:"output"`
}

// StorageConfig selects and configures the saved game backend
type StorageConfig struct {
	Type    string       `mapstructure:"type"`
	DataDir string       `mapstructure:"data_dir"`
	Redis   RedisConfig  `mapstructure:"redis"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig holds Redis backend settings
type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	TTL      time.Duration `mapstructure:"ttl"`
	PoolSize int           `mapstructure:"pool_size"`
}

// SQLiteConfig holds SQLite backend settings
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds the settings used for new games
type GameConfig struct {
	Players   int    `mapstructure:"players"`
	Rows      int    `mapstructure:"rows"`
	Cols      int    `mapstructure:"cols"`
	ScoreType string `mapstructure:"score_type"`

	// Seed makes tile draws repeatable for each process; 0 draws from crypto/rand
	Seed uint64 `mapstructure:"seed"`
}

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", StorageFile)
	v.SetDefault("storage.data_dir", "~/.metro/saves")
	v.SetDefault("storage.redis.url", "redis://localhost:6379/0")
	v.SetDefault("storage.redis.ttl", 30*24*time.Hour)
	v.SetDefault("storage.redis.pool_size", 10)
	v.SetDefault("storage.sqlite.path", "~/.metro/metro.db")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", FormatText)

	v.SetDefault("game.players", model.DefaultPlayers)
	v.SetDefault("game.rows", model.DefaultRows)
	v.SetDefault("game.cols", model.DefaultCols)
	v.SetDefault("game.score_type", model.ScoreSimple.String())
	v.SetDefault("game.seed", 0)

	v.SetDefault("output", FormatText)
}

// NewViper creates a Viper instance with defaults and environment
// overrides set up, ready for flags to be bound to it
func NewViper() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration into a Config. An explicit configPath must
// exist; otherwise config.yaml is looked up in the working directory and
// ~/.metro, and defaults apply when none is found.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.metro")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	var err error
	if cfg.Storage.DataDir, err = expandHome(cfg.Storage.DataDir); err != nil {
		return nil, err
	}
	if cfg.Storage.SQLite.Path, err = expandHome(cfg.Storage.SQLite.Path); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration is usable
func Validate(c *Config) error {
	switch c.Storage.Type {
	case StorageMemory:
	case StorageFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir must be set for file storage")
		}
	case StorageRedis:
		if c.Storage.Redis.URL == "" {
			return fmt.Errorf("storage.redis.url must be set for redis storage")
		}
		if c.Storage.Redis.TTL < 0 {
			return fmt.Errorf("storage.redis.ttl must be non-negative")
		}
	case StorageSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path must be set for sqlite storage")
		}
	default:
		return fmt.Errorf("storage.type must be one of memory, file, redis, sqlite; got %q", c.Storage.Type)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return fmt.Errorf("log.format must be text or json; got %q", c.Log.Format)
	}
	if c.Output != FormatText && c.Output != FormatJSON {
		return fmt.Errorf("output must be text or json; got %q", c.Output)
	}

	if _, err := c.GameSettings(); err != nil {
		return err
	}
	return nil
}

// GameSettings converts the game section into settings for a new game
func (c *Config) GameSettings() (model.GameSettings, error) {
	scoreType, err := model.ParseScoreType(c.Game.ScoreType)
	if err != nil {
		return model.GameSettings{}, fmt.Errorf("game.score_type: %w", err)
	}
	settings := model.GameSettings{
		Players:   c.Game.Players,
		Rows:      c.Game.Rows,
		Cols:      c.Game.Cols,
		ScoreType: scoreType,
	}
	if err := settings.Validate(); err != nil {
		return model.GameSettings{}, fmt.Errorf("game: %w", err)
	}
	return settings, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
