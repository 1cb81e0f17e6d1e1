package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, task.DefaultType, cfg.DefaultType)
	assert.Equal(t, units.Kilometers, cfg.DistanceUnit)
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().DefaultType, cfg.DefaultType)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
default_type: racing
distance_unit: nm
theme: gruvbox
waypoint_files:
  - ~/waypoints/*.cup
database:
  busy_timeout: 2s
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, task.TypeRacing, cfg.DefaultType)
	assert.Equal(t, units.NauticalMiles, cfg.DistanceUnit)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, []string{"~/waypoints/*.cup"}, cfg.WaypointFiles)
	assert.Equal(t, 2*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns, "unset values keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "unknown type", body: "default_type: paragliding", wantErr: "default_type"},
		{name: "unknown unit", body: "distance_unit: furlong", wantErr: "distance_unit"},
		{name: "unknown theme", body: "theme: neon", wantErr: "theme"},
		{name: "negative timeout", body: "database: {busy_timeout: -1s}", wantErr: "database.busy_timeout"},
		{name: "bad yaml", body: "default_type: [", wantErr: "parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
