package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to the generic override variable names
const EnvPrefix = "AICOMMIT"

// Override keys, shared by environment bindings and command-line flags
const (
	KeyProvider     = "provider"
	KeyModel        = "model"
	KeyBaseURL      = "base_url"
	KeyAPIKey       = "api_key"
	KeyMaxDiffChars = "max_diff_chars"
	KeyRelax        = "relax"
	KeyDebug        = "debug"
	KeyWriteBack    = "write_back"
	KeyOllamaHost   = "ollama_host"
)

// OverrideSet holds runtime values that take precedence over persisted settings.
// Empty strings mean "not set".
type OverrideSet struct {
	Provider     string
	Model        string
	BaseURL      string
	APIKey       string
	MaxDiffChars string
	Relax        string
	Debug        string
	WriteBack    string

	// OllamaHost replaces the fixed local-inference default base URL
	OllamaHost string

	// ProviderAPIKeys maps provider key variable names (e.g. GROQ_API_KEY) to values
	ProviderAPIKeys map[string]string
}

// providerAPIKey returns the provider-specific override key, if any
func (o OverrideSet) providerAPIKey(p Provider) string {
	env := p.APIKeyEnv()
	if env == "" || o.ProviderAPIKeys == nil {
		return ""
	}
	return strings.TrimSpace(o.ProviderAPIKeys[env])
}

// BindEnv binds every override key to its environment variable on v
func BindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		KeyProvider:     EnvPrefix + "_PROVIDER",
		KeyModel:        EnvPrefix + "_MODEL",
		KeyBaseURL:      EnvPrefix + "_BASE_URL",
		KeyAPIKey:       EnvPrefix + "_API_KEY",
		KeyMaxDiffChars: EnvPrefix + "_MAX_DIFF_CHARS",
		KeyRelax:        EnvPrefix + "_RELAX",
		KeyDebug:        EnvPrefix + "_DEBUG",
		KeyWriteBack:    EnvPrefix + "_WRITE_BACK",
		KeyOllamaHost:   "OLLAMA_HOST",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	for _, p := range supportedProviders {
		env := p.APIKeyEnv()
		if env == "" {
			continue
		}
		if err := v.BindEnv(strings.ToLower(env), env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// OverridesFromViper snapshots the override keys bound on v.
// Unchanged command-line flags do not count as set.
func OverridesFromViper(v *viper.Viper) OverrideSet {
	get := func(key string) string {
		if !v.IsSet(key) {
			return ""
		}
		return strings.TrimSpace(v.GetString(key))
	}

	o := OverrideSet{
		Provider:        get(KeyProvider),
		Model:           get(KeyModel),
		BaseURL:         get(KeyBaseURL),
		APIKey:          get(KeyAPIKey),
		MaxDiffChars:    get(KeyMaxDiffChars),
		Relax:           get(KeyRelax),
		Debug:           get(KeyDebug),
		WriteBack:       get(KeyWriteBack),
		OllamaHost:      get(KeyOllamaHost),
		ProviderAPIKeys: make(map[string]string),
	}
	for _, p := range supportedProviders {
		env := p.APIKeyEnv()
		if env == "" {
			continue
		}
		if val := get(strings.ToLower(env)); val != "" {
			o.ProviderAPIKeys[env] = val
		}
	}
	return o
}

// overrideString returns the override when non-empty, else the persisted value
func overrideString(override, persisted string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	return persisted
}

func overrideBool(key, override string, persisted bool) (bool, error) {
	if override == "" {
		return persisted, nil
	}
	b, err := cast.ToBoolE(override)
	if err != nil {
		return false, &Error{
			Kind:    KindInvalidOverride,
			Message: fmt.Sprintf("%s must be a boolean, got %q", key, override),
			Err:     err,
		}
	}
	return b, nil
}

func overrideInt(key, override string, persisted int) (int, error) {
	if override == "" {
		return persisted, nil
	}
	n, err := cast.ToIntE(override)
	if err != nil {
		return 0, &Error{
			Kind:    KindInvalidOverride,
			Message: fmt.Sprintf("%s must be an integer, got %q", key, override),
			Err:     err,
		}
	}
	return n, nil
}
