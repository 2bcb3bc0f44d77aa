package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv(EnvPrefix+"_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	// Point the file lookup at an existing but empty YAML file so ambient
	// config.yaml or env files cannot leak into the test.
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	t.Setenv(EnvPrefix+"_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, int64(10<<20), cfg.Processing.MaxUploadBytes)
	assert.Equal(t, 5, cfg.Processing.PreviewRows)
	assert.Equal(t, 4, cfg.Processing.Workers)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
processing:
  workers: 2
  preview_rows: 10
`), 0644))
	t.Setenv(EnvPrefix+"_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Processing.Workers)
	assert.Equal(t, 10, cfg.Processing.PreviewRows)
	// Untouched fields keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int64(10<<20), cfg.Processing.MaxUploadBytes)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv(EnvPrefix+"_CONFIG_FILE", path)
	t.Setenv(EnvPrefix+"_SERVER_PORT", "7070")
	t.Setenv(EnvPrefix+"_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	t.Setenv(EnvPrefix+"_CONFIG_FILE", path)
	t.Setenv(EnvPrefix+"_LOGGING_LEVEL", "chatty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}
