package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldHook struct{}

func (fieldHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("hooked", "yes")
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "taskedit.log")

	logger, closer, err := New("debug", file, fieldHook{})
	require.NoError(t, err)

	logger.Info().Msg("first")
	closer()

	logger, closer, err = New("debug", file)
	require.NoError(t, err)
	logger.Info().Msg("second")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
	assert.Contains(t, string(data), `"hooked":"yes"`)
	assert.Contains(t, string(data), `"message":"second"`, "log file is appended to")
}

func TestNew_Level(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taskedit.log")

	logger, closer, err := New("warn", file)
	require.NoError(t, err)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}
