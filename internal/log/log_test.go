package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, debug bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOutput, prevDebug, prevColor := output, debugMode, color.NoColor
	SetOutput(&buf)
	SetDebugMode(debug)
	color.NoColor = true
	t.Cleanup(func() {
		SetOutput(prevOutput)
		SetDebugMode(prevDebug)
		color.NoColor = prevColor
	})
	return &buf
}

func TestTruncateDump(t *testing.T) {
	t.Run("short input unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateDump("hello"))
	})

	t.Run("exact limit unchanged", func(t *testing.T) {
		s := strings.Repeat("a", MaxDumpChars)
		assert.Equal(t, s, TruncateDump(s))
	})

	t.Run("long input cut and marked", func(t *testing.T) {
		s := strings.Repeat("a", MaxDumpChars+500)
		got := TruncateDump(s)
		assert.True(t, strings.HasPrefix(got, strings.Repeat("a", MaxDumpChars)))
		assert.Contains(t, got, "truncated 500 chars")
	})

	t.Run("multibyte characters are not split", func(t *testing.T) {
		s := strings.Repeat("é", MaxDumpChars+1)
		got := TruncateDump(s)
		assert.True(t, strings.HasPrefix(got, strings.Repeat("é", MaxDumpChars)))
		assert.Contains(t, got, "truncated 1 chars")
	})
}

func TestDebugRequest(t *testing.T) {
	t.Run("silent without debug mode", func(t *testing.T) {
		buf := captureOutput(t, false)
		DebugRequest("POST", "http://localhost/api/generate", []byte(`{"model":"x"}`))
		assert.Empty(t, buf.String())
	})

	t.Run("dumps request in debug mode", func(t *testing.T) {
		buf := captureOutput(t, true)
		DebugRequest("POST", "http://localhost/api/generate", []byte(`{"model":"x"}`))
		assert.Contains(t, buf.String(), "POST http://localhost/api/generate")
		assert.Contains(t, buf.String(), `{"model":"x"}`)
	})

	t.Run("large body truncated", func(t *testing.T) {
		buf := captureOutput(t, true)
		DebugRequest("POST", "http://x", []byte(strings.Repeat("z", 5000)))
		assert.Contains(t, buf.String(), "truncated 3000 chars")
		assert.NotContains(t, buf.String(), strings.Repeat("z", MaxDumpChars+1))
	})
}

func TestDebugResponse(t *testing.T) {
	buf := captureOutput(t, true)
	DebugResponse(200, []byte(`{"response":"feat: x"}`))
	assert.Contains(t, buf.String(), "API Response: 200")
	assert.Contains(t, buf.String(), "feat: x")
}

func TestDebugConfig(t *testing.T) {
	buf := captureOutput(t, true)
	DebugConfig("Configuration", map[string]string{"provider": "groq"})
	assert.Contains(t, buf.String(), "Configuration")
	assert.Contains(t, buf.String(), `"provider": "groq"`)
}

func TestWarnAndError(t *testing.T) {
	buf := captureOutput(t, false)
	Warn("diff truncated to %d characters", 10)
	Error("request failed")
	assert.Contains(t, buf.String(), "Warning: diff truncated to 10 characters")
	assert.Contains(t, buf.String(), "Error: request failed")
}
