package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInstructions(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.md")
	fallback := filepath.Join(dir, InstructionsFileName)
	require.NoError(t, os.WriteFile(explicit, []byte("  Use gitmoji.\n"), 0644))
	require.NoError(t, os.WriteFile(fallback, []byte("Write in French."), 0644))

	t.Run("explicit file wins", func(t *testing.T) {
		text, source, err := ResolveInstructions(explicit, fallback)
		require.NoError(t, err)
		assert.Equal(t, "Use gitmoji.", text)
		assert.Equal(t, explicit, source)
	})

	t.Run("fallback next to settings", func(t *testing.T) {
		text, source, err := ResolveInstructions("", fallback)
		require.NoError(t, err)
		assert.Equal(t, "Write in French.", text)
		assert.Equal(t, fallback, source)
	})

	t.Run("missing fallback uses built-in", func(t *testing.T) {
		text, source, err := ResolveInstructions("", filepath.Join(dir, "absent.md"))
		require.NoError(t, err)
		assert.Equal(t, DefaultInstructions, text)
		assert.Equal(t, "built-in", source)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, _, err := ResolveInstructions(filepath.Join(dir, "absent.md"), fallback)
		assert.Error(t, err)
	})

	t.Run("empty file falls through", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.md")
		require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0644))

		text, _, err := ResolveInstructions(empty, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultInstructions, text)
	})
}

func TestDefaultInstructions(t *testing.T) {
	for _, typ := range ValidTypes {
		assert.Contains(t, DefaultInstructions, "- "+typ+":")
	}
	assert.Contains(t, DefaultInstructions, "72 characters")
}
