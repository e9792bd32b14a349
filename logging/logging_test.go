package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("warn", false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))

	_, err = New("loud", false)
	assert.Error(t, err)
}

func TestNewFileDisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, closer, err := NewFile(false, dir, "info")
	require.NoError(t, err)
	log.Info("dropped")
	assert.NoError(t, closer.Close())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "disabled logging must not create the directory")
}

func TestNewFileEnabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, closer, err := NewFile(true, dir, "debug")
	require.NoError(t, err)

	log.Info("race started")
	require.NoError(t, log.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "race started")
}
