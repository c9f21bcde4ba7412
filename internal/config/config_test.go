package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "png", cfg.Render.Format)
	assert.Equal(t, 12*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, 20*time.Second, cfg.Render.Timeout)
	assert.Empty(t, cfg.Completion.APIKey)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.Render.Format)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.yaml")
	content := `
completion:
  api_key: file-key
  model: gpt-4o-mini
  timeout_seconds: 5
render:
  graphviz_path: /usr/bin/dot
  format: svg
  timeout_seconds: 30
staging:
  dirs:
    - /tmp/out
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Completion.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Completion.Model)
	assert.Equal(t, 5*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, "/usr/bin/dot", cfg.Render.GraphvizPath)
	assert.Equal(t, "svg", cfg.Render.Format)
	assert.Equal(t, 30*time.Second, cfg.Render.Timeout)
	assert.Equal(t, []string{"/tmp/out"}, cfg.Staging.Dirs)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("completion: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("completion:\n  api_key: file-key\n"), 0o644))

	t.Setenv("COMPOSER_OPENAI_API_KEY", "env-key")
	t.Setenv("COMPOSER_FORMAT", "svg")
	t.Setenv("COMPOSER_STAGING_DIR", "/var/stage")
	t.Setenv("COMPOSER_RENDER_TIMEOUT", "45")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Completion.APIKey, "environment wins over the file")
	assert.Equal(t, "svg", cfg.Render.Format)
	assert.Equal(t, []string{"/var/stage"}, cfg.Staging.Dirs)
	assert.Equal(t, 45*time.Second, cfg.Render.Timeout)
}
