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

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", cfg.OpenRouter.Model)
	assert.Equal(t, 45, cfg.OpenRouter.TimeoutSeconds)
	assert.Equal(t, 8, cfg.Bot.MaxTurns)
	assert.Equal(t, 3900, cfg.Bot.MaxMessageLength)
	assert.Equal(t, 10000, cfg.Supervisor.Port)
	assert.Equal(t, []string{"./companion"}, cfg.Supervisor.Command)
}

func TestLoadRequiresTelegramToken(t *testing.T) {
	path := writeConfig(t, `
openrouter:
  token: "sk-or-whatever"
`)

	_, err := LoadFrom(path)
	require.Error(t, err)
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")

	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Supervisor.Port)
}

func TestLoadExplicitPortWinsOverEnv(t *testing.T) {
	t.Setenv("PORT", "8080")

	path := writeConfig(t, `
telegram:
  token: "123:abc"
supervisor:
  port: 9999
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Supervisor.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
