package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 250, cfg.Search.Iterations)
	require.Equal(t, 10, cfg.Search.ChanceNodes)
}

func TestLoad(t *testing.T) {
	t.Run("overriding defaults", func(t *testing.T) {
		path := writeConfig(t, `
search:
  iterations: 40
  exploration: 1.5
model:
  leadtime: 3
experiment:
  episodes: 2
  log_level: debug
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 40, cfg.Search.Iterations)
		require.Equal(t, 1.5, cfg.Search.Exploration)
		require.Equal(t, 10, cfg.Search.ChanceNodes, "Missing keys keep defaults")
		require.Equal(t, 3, cfg.Model.Leadtime)
		require.Equal(t, 2, cfg.Experiment.Episodes)
		require.Equal(t, "debug", cfg.Experiment.LogLevel)
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		path := writeConfig(t, "search:\n  iterations: 0\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("rejecting malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "search: [\n")

		_, err := Load(path)

		require.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
