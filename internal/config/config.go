package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Words   WordsConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Env  string `envconfig:"ENV" default:"development"` // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	StrictRules       bool          `envconfig:"STRICT_RULES" default:"false"`
	MaxTables         int           `envconfig:"MAX_TABLES" default:"1000"`
	TableCodeLength   int           `envconfig:"TABLE_CODE_LENGTH" default:"6"`
	StaleTableTimeout time.Duration `envconfig:"STALE_TABLE_TIMEOUT" default:"2h"`
	CleanupInterval   time.Duration `envconfig:"CLEANUP_INTERVAL" default:"10m"`
}

// WordsConfig holds word source configuration
type WordsConfig struct {
	File       string `envconfig:"WORDS_FILE"`
	RecentSize int    `envconfig:"RECENT_WORDS" default:"32"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"` // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing the config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that would make the server misbehave
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Game.TableCodeLength < 4 {
		return fmt.Errorf("table code length must be at least 4, got %d", c.Game.TableCodeLength)
	}
	if c.Game.MaxTables < 1 {
		return fmt.Errorf("max tables must be positive, got %d", c.Game.MaxTables)
	}
	if c.Words.RecentSize < 0 {
		return fmt.Errorf("recent words must not be negative, got %d", c.Words.RecentSize)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
