package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 2048, cfg.AI.MaxTokens)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 100, cfg.History.Limit)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ai:
  model: gpt-4o
  max_tokens: 512
history:
  enabled: false
  limit: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 512, cfg.AI.MaxTokens)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.Limit)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: gpt-4o\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 2048, cfg.AI.MaxTokens)
	assert.Equal(t, 100, cfg.History.Limit)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		AI:      AIConfig{Model: "gpt-4o", MaxTokens: 1024, BaseURL: "http://localhost:8080/v1"},
		History: HistoryConfig{Enabled: true, Limit: 50},
		Display: DisplayConfig{Theme: "default"},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
