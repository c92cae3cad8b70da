package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultConfig.Validate())
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Config){
		"quality":  func(c *Config) { c.Quality = 0 },
		"path":     func(c *Config) { c.PathQuality = -1 },
		"eps":      func(c *Config) { c.Eps = 0 },
		"warmup":   func(c *Config) { c.WarmupSteps = 0 },
		"implicit": func(c *Config) { c.ImplicitStep = 0 },
		"workers":  func(c *Config) { c.Workers = 0 },
	}
	for name, mutate := range cases {
		c := DefaultConfig
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lattice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 50\nworkers: 4\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.Quality)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, DefaultConfig.PathQuality, c.PathQuality)
	assert.Equal(t, DefaultConfig.Eps, c.Eps)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: [1, 2"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: -3\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LATTICE_QUALITY", "400")
	t.Setenv("LATTICE_WORKERS", "3")
	t.Setenv("LATTICE_EPS", "")

	c, err := FromEnv(DefaultConfig)
	require.NoError(t, err)
	assert.Equal(t, 400.0, c.Quality)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, DefaultConfig.Eps, c.Eps)

	t.Setenv("LATTICE_COOLDOWN_STEPS", "many")
	_, err = FromEnv(DefaultConfig)
	assert.Error(t, err)
}

func TestSetGetConfig(t *testing.T) {
	old := GetConfig()
	defer SetConfig(old)

	c := DefaultConfig
	c.Quality = 75
	SetConfig(c)
	assert.Equal(t, 75.0, GetConfig().Quality)
}
