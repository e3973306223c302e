package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "REELHOUSE_CONFIG"

// defaultConfigPaths are searched in order; the first existing file wins.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelhouse/config.yaml",
}

var ErrAPIKeyRequired = errors.New("tmdb api key is required")

// Config holds the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `koanf:"addr"`
	// SearchRatePerMinute bounds per-client search/browse requests because
	// each one can fan out to the upstream metadata API.
	SearchRatePerMinute int `koanf:"search_rate_per_minute"`
	// AllowedOrigins lists browser origins permitted by CORS. A single "*"
	// entry allows any origin.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// TMDBConfig configures the upstream metadata API client.
type TMDBConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

// DatabaseConfig configures the sqlite preference store.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// LogConfig configures optional file logging with rotation.
type LogConfig struct {
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8080",
			SearchRatePerMinute: 60,
			AllowedOrigins:      []string{"http://localhost:3000"},
		},
		TMDB: TMDBConfig{
			BaseURL: "https://api.themoviedb.org/3",
		},
		Database: DatabaseConfig{
			Path: "data/reelhouse.db",
		},
		Log: LogConfig{
			MaxSizeMB:  25,
			MaxBackups: 3,
		},
	}
}

// Load builds the configuration from three layers: struct defaults, an
// optional YAML file, and REELHOUSE_* environment variables (highest
// priority). REELHOUSE_TMDB_API_KEY maps to tmdb.api_key and so on.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("REELHOUSE_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "REELHOUSE_")
		s = strings.ToLower(s)
		// The first underscore separates the section from the key; keys
		// themselves may contain underscores (api_key, max_size_mb).
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		return ErrAPIKeyRequired
	}
	if strings.TrimSpace(c.TMDB.BaseURL) == "" {
		return errors.New("tmdb base url is required")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	return nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
