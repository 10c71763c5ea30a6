package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesFromViper_Environment(t *testing.T) {
	t.Setenv("AICOMMIT_PROVIDER", "groq")
	t.Setenv("AICOMMIT_MODEL", "llama-3.1-8b-instant")
	t.Setenv("AICOMMIT_MAX_DIFF_CHARS", "500")
	t.Setenv("AICOMMIT_RELAX", "1")
	t.Setenv("GROQ_API_KEY", "gsk-env")
	t.Setenv("OLLAMA_HOST", "127.0.0.1:11434")

	v := viper.New()
	require.NoError(t, BindEnv(v))

	o := OverridesFromViper(v)
	assert.Equal(t, "groq", o.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", o.Model)
	assert.Equal(t, "500", o.MaxDiffChars)
	assert.Equal(t, "1", o.Relax)
	assert.Equal(t, "127.0.0.1:11434", o.OllamaHost)
	assert.Equal(t, "gsk-env", o.ProviderAPIKeys["GROQ_API_KEY"])
	assert.Empty(t, o.APIKey)
	assert.Empty(t, o.Debug)
}

func TestOverridesFromViper_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("AICOMMIT_MODEL", "from-env")
	t.Setenv("AICOMMIT_DEBUG", "0")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("model", "", "")
	flags.Bool("debug", false, "")
	flags.Bool("relax", false, "")
	require.NoError(t, flags.Parse([]string{"--model", "from-flag", "--debug"}))

	v := viper.New()
	require.NoError(t, BindEnv(v))
	require.NoError(t, v.BindPFlag(KeyModel, flags.Lookup("model")))
	require.NoError(t, v.BindPFlag(KeyDebug, flags.Lookup("debug")))
	require.NoError(t, v.BindPFlag(KeyRelax, flags.Lookup("relax")))

	o := OverridesFromViper(v)
	assert.Equal(t, "from-flag", o.Model)
	assert.Equal(t, "true", o.Debug)
	// An unchanged boolean flag must not shadow the persisted value
	assert.Empty(t, o.Relax)
}

func TestOverridesFromViper_Empty(t *testing.T) {
	v := viper.New()
	require.NoError(t, BindEnv(v))

	o := OverridesFromViper(v)
	cfg, err := Resolve(&Settings{Provider: "openai", Model: "gpt-4o", Relax: true, MaxDiffChars: 42}, o)
	require.NoError(t, err)
	assert.True(t, cfg.RelaxValidation)
	assert.Equal(t, 42, cfg.MaxDiffChars)
}
