// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/pfrederiksen/curling-standings/internal/logger"
)

type Config struct {
	Port            int           `envconfig:"PORT" default:"3000"`
	BoardFile       string        `envconfig:"BOARD_FILE" default:"smack-board.json"`
	StaticDir       string        `envconfig:"STATIC_DIR" default:"."`
	UpstreamBaseURL string        `envconfig:"UPSTREAM_BASE_URL" default:"https://livescores.worldcurling.org/og/aspnet"`
	CacheInterval   time.Duration `envconfig:"CACHE_INTERVAL" default:"30s"`
	WarmInterval    time.Duration `envconfig:"WARM_INTERVAL" default:"0s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Load reads a .env file if one exists, then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ranges envconfig cannot express
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.BoardFile == "" {
		return fmt.Errorf("BOARD_FILE must not be empty")
	}
	if c.CacheInterval < 0 || c.WarmInterval < 0 {
		return fmt.Errorf("intervals must not be negative")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() logger.Level {
	lvl, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return lvl
}
