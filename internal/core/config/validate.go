package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
	"github.com/colonyops/taskedit/internal/core/waypoint"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks the configuration structure.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("default_type", string(c.DefaultType), validType),
		criterio.Run("distance_unit", string(c.DistanceUnit), validUnit),
		criterio.Run("theme", c.Theme, validTheme),
		criterio.Run("data_dir", c.DataDir, required),
		c.validateDatabase(),
	)
}

// ValidateDeep runs Validate, then checks glob syntax and file access.
// An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateWaypointFiles(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if len(c.WaypointFiles) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Waypoints",
			Message:  "no waypoint_files configured; new points can only be typed in by hand",
		})
	}

	for i, pattern := range c.WaypointFiles {
		if !doublestar.ValidatePattern(pattern) {
			continue
		}
		matches, err := waypoint.Glob(pattern)
		if err == nil && len(matches) == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Waypoints",
				Item:     fmt.Sprintf("waypoint_files[%d]", i),
				Message:  fmt.Sprintf("%q matches no files", pattern),
			})
		}
	}

	return warnings
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", errors.New("must not be negative"))
	}
	if c.Database.MaxOpenConns < 0 {
		errs = errs.Append("database.max_open_conns", errors.New("must not be negative"))
	}
	return errs.ToError()
}

func (c *Config) validateWaypointFiles() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.WaypointFiles {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("waypoint_files[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func validType(s string) error {
	if t := task.Type(s); !t.IsValid() {
		return fmt.Errorf("unknown task type %q", t)
	}
	return nil
}

func validUnit(s string) error {
	if u := units.Distance(s); !u.IsValid() {
		return fmt.Errorf("unknown unit %q (want km, nm or sm)", u)
	}
	return nil
}

func validTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func required(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil // defaults are used
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}
