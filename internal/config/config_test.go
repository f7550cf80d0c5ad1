package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chronos-tachyon/huffcodec/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, "", cfg.Encoder.DefaultPath)
	assert.Equal(t, 1, cfg.Encoder.Workers)
	assert.True(t, cfg.Encoder.Fill)
	assert.True(t, cfg.Output.Framed)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("log:\n  level: debug\nencoder:\n  workers: 4\n  default_path: saves/default.json\noutput:\n  framed: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Encoder.Workers)
	assert.Equal(t, "saves/default.json", cfg.Encoder.DefaultPath)
	assert.True(t, cfg.Encoder.Fill)
	assert.False(t, cfg.Output.Framed)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("HUFFCODEC_LOG_LEVEL", "warn")
	t.Setenv("HUFFCODEC_ENCODER_WORKERS", "8")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Encoder.Workers)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg.Log.Level = "error"
	cfg.Encoder.Workers = 0
	assert.Error(t, cfg.Validate())
}
