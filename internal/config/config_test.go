package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5003, cfg.App.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "llama3", cfg.Ollama.DefaultModel)
	assert.NotZero(t, cfg.ShutdownTimeout)
}

func TestLoadEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("OLLAMA_DEFAULT_MODEL", "mistral")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "mistral", cfg.Ollama.DefaultModel)
}
