package heuristics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"question_mark_weight: 0.9\ndecision_threshold: 0.8\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.QuestionMarkWeight)
	assert.Equal(t, 0.8, cfg.DecisionThreshold)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultConfig().PolitenessWeight, cfg.PolitenessWeight)
	assert.Equal(t, DefaultConfig().ArticleRatioThreshold, cfg.ArticleRatioThreshold)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("question_mark_weight: [oops\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadUserConfig_FallsBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, DefaultConfig(), LoadUserConfig())
}

func TestLoadUserConfig_ReadsXDGPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(xdg, "rudder")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "heuristics.yaml"),
		[]byte("comparative_weight: 0.33\n"), 0o644))

	cfg := LoadUserConfig()
	assert.Equal(t, 0.33, cfg.ComparativeWeight)
}
