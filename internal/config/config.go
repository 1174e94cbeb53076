// Package config loads process configuration from the environment and sets
// up logging.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/sadopc/upfocus/internal/store"
)

// Config is read from UPFOCUS_-prefixed environment variables. User
// preferences are not here; they live in the store.
type Config struct {
	// DBPath defaults to store.DefaultDBPath when empty.
	DBPath string `envconfig:"DB_PATH" default:""`

	// Logging. LogPath defaults to upfocus.log next to the database.
	LogPath       string `envconfig:"LOG_PATH" default:""`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`
}

const envPrefix = "UPFOCUS"

// Load parses the environment and fills in derived paths.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := c.resolveDefaults(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) resolveDefaults() error {
	if c.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
		c.DBPath = p
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(filepath.Dir(c.DBPath), "upfocus.log")
	}
	if c.LogMaxSizeMB <= 0 || c.LogMaxBackups < 0 || c.LogMaxAgeDays < 0 {
		return fmt.Errorf("invalid log rotation settings: size %d MB, backups %d, age %d days",
			c.LogMaxSizeMB, c.LogMaxBackups, c.LogMaxAgeDays)
	}
	return nil
}
