package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.Oracle.Model)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
port: "9090"
oracle:
  api_key: file-key
  model: meta-llama/llama-3.3-8b-instruct:free
  temperature: 0.15
  max_attempts: 2
  requests_per_minute: 30
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "file-key", cfg.Oracle.APIKey)
	assert.Equal(t, "meta-llama/llama-3.3-8b-instruct:free", cfg.Oracle.Model)
	assert.InDelta(t, 0.15, cfg.Oracle.Temperature, 0.001)
	assert.Equal(t, 2, cfg.Oracle.MaxAttempts)
	assert.Equal(t, 30, cfg.Oracle.RequestsPerMinute)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"9090\"\noracle:\n  api_key: file-key\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("OPENROUTER_API_KEY", "env-key")
	t.Setenv("OPENROUTER_MODEL", "some/other-model")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "env-key", cfg.Oracle.APIKey)
	assert.Equal(t, "some/other-model", cfg.Oracle.Model)
}
