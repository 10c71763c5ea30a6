package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.False(t, store.Exists())
}

func TestStore_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	configContent := `{
  "provider": "groq",
  "api_key": "gsk-test",
  "model": "llama-3.1-70b-versatile",
  "base_url": "",
  "relax": 1,
  "debug": 0,
  "write_back": 1,
  "max_diff_chars": 5000,
  "created_at": "2024-01-01T00:00:00Z",
  "updated_at": "2024-01-02T00:00:00Z"
}`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	settings, err := NewStore(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, "groq", settings.Provider)
	assert.Equal(t, "gsk-test", settings.APIKey)
	assert.Equal(t, "llama-3.1-70b-versatile", settings.Model)
	assert.Empty(t, settings.BaseURL)
	assert.True(t, settings.Relax)
	assert.False(t, settings.Debug)
	assert.True(t, settings.WriteBack)
	assert.Equal(t, 5000, settings.MaxDiffChars)
	assert.Equal(t, "2024-01-01T00:00:00Z", settings.CreatedAt)
}

func TestStore_LoadAcceptsBooleanLiterals(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(configPath, []byte(`{"provider":"openai","model":"gpt-4o","relax":true,"debug":false}`), 0644)
	require.NoError(t, err)

	settings, err := NewStore(configPath).Load()
	require.NoError(t, err)
	assert.True(t, settings.Relax)
	assert.False(t, settings.Debug)
}

func TestStore_LoadAppliesDefaultMaxDiffChars(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(configPath, []byte(`{"provider":"openai","model":"gpt-4o"}`), 0644)
	require.NoError(t, err)

	settings, err := NewStore(configPath).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDiffChars, settings.MaxDiffChars)
}

func TestStore_LoadInvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "provider = openai"},
		{name: "empty file", content: ""},
		{name: "wrong type", content: `{"max_diff_chars": "lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			_, err := NewStore(configPath).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPersistedFormat)
		})
	}
}

func TestStore_SaveWritesIntegerBooleans(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.json")
	store := NewStore(configPath)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	settings := &Settings{
		Provider:     "ollama",
		Model:        "llama3.1",
		Relax:        true,
		WriteBack:    false,
		MaxDiffChars: 0,
	}
	require.NoError(t, store.Save(settings, now))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1), raw["relax"])
	assert.Equal(t, float64(0), raw["debug"])
	assert.Equal(t, float64(0), raw["write_back"])
	assert.Equal(t, float64(0), raw["max_diff_chars"])
	assert.Equal(t, "2024-03-01T10:00:00Z", raw["created_at"])
	assert.Equal(t, "2024-03-01T10:00:00Z", raw["updated_at"])

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_SavePreservesCreatedAt(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	settings := &Settings{Provider: "openai", Model: "gpt-4o"}
	require.NoError(t, store.Save(settings, first))

	loaded, err := store.Load()
	require.NoError(t, err)
	loaded.Model = "gpt-4o-mini"
	require.NoError(t, store.Save(loaded, second))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", reloaded.Model)
	assert.Equal(t, "2024-01-01T00:00:00Z", reloaded.CreatedAt)
	assert.Equal(t, "2024-01-03T00:00:00Z", reloaded.UpdatedAt)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))

	settings := &Settings{
		Provider:     "mistral",
		APIKey:       "mk-123",
		Model:        "mistral-small-latest",
		BaseURL:      "https://example.test/v1",
		Debug:        true,
		WriteBack:    true,
		MaxDiffChars: 1234,
	}
	require.NoError(t, store.Save(settings, time.Now()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestDefaultPath(t *testing.T) {
	t.Run("explicit variable wins", func(t *testing.T) {
		t.Setenv("AICOMMIT_CONFIG", "/tmp/custom.json")
		path, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.json", path)
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("AICOMMIT_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		path, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", "aicommit", "config.json"), path)
	})
}
