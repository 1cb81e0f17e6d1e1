// Package config handles configuration loading and validation for taskedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
)

// Config holds the application configuration.
type Config struct {
	DefaultType   task.Type      `yaml:"default_type"`
	DistanceUnit  units.Distance `yaml:"distance_unit"`
	WaypointFiles []string       `yaml:"waypoint_files"`
	Theme         string         `yaml:"theme"`
	Database      DatabaseConfig `yaml:"database"`
	DataDir       string         `yaml:"-"` // set by caller, not from config file
}

// DatabaseConfig tunes the sqlite task library.
type DatabaseConfig struct {
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
	MaxOpenConns int           `yaml:"max_open_conns"`
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{
		DefaultType:   task.DefaultType,
		DistanceUnit:  units.Kilometers,
		WaypointFiles: []string{},
		Theme:         styles.DefaultTheme,
		Database: DatabaseConfig{
			BusyTimeout:  5 * time.Second,
			MaxOpenConns: 4,
		},
	}
}

// Load reads configuration from configPath and sets the data directory. A
// missing or empty path yields the defaults.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultType == "" {
		c.DefaultType = defaults.DefaultType
	}
	if c.DistanceUnit == "" {
		c.DistanceUnit = defaults.DistanceUnit
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
}
