package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "haystack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
project:
  url: https://host/api/demo/
  username: alice
  password: secret
http:
  timeout_seconds: 10
capture:
  enabled: true
  path: /tmp/session.hlog
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://host/api/demo/", cfg.Project.URL)
	assert.Equal(t, "alice", cfg.Project.Username)
	assert.Equal(t, 10, cfg.HTTP.TimeoutSeconds)
	assert.True(t, cfg.Capture.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
project:
  url: https://host/api/demo/
  username: alice
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Capture.Enabled)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
project:
  url: https://host/api/demo/
  username: alice
  password: filepass
`)
	t.Setenv("HAYSTACK_PASSWORD", "envpass")
	t.Setenv("HAYSTACK_TIMEOUT_SECONDS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "envpass", cfg.Project.Password)
	assert.Equal(t, 5, cfg.HTTP.TimeoutSeconds)
}

func TestLoadWithoutFileUsesEnv(t *testing.T) {
	t.Setenv("HAYSTACK_URL", "https://host/api/demo/")
	t.Setenv("HAYSTACK_USERNAME", "alice")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Project.Username)
}

func TestValidateRejectsBadURL(t *testing.T) {
	path := writeConfig(t, `
project:
  url: https://host/notapi/demo/
  username: alice
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsMissingUsername(t *testing.T) {
	path := writeConfig(t, `
project:
  url: https://host/api/demo/
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "username")
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, `
project:
  url: https://host/api/demo/
  username: alice
logging:
  level: verbose
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "logging.level")
}
