package config

import (
	"fmt"
	"time"

	"github.com/huimingz/aicommit/internal/log"
)

// RuntimeConfig is the resolved configuration for one invocation
type RuntimeConfig struct {
	Provider        Provider `json:"provider"`
	Model           string   `json:"model"`
	BaseURL         string   `json:"base_url"`
	APIKey          string   `json:"api_key,omitempty"`
	RelaxValidation bool     `json:"relax"`
	Debug           bool     `json:"debug"`
	MaxDiffChars    int      `json:"max_diff_chars"`
	WriteBack       bool     `json:"write_back"`
}

// Masked returns a copy safe for display and debug output
func (c RuntimeConfig) Masked() RuntimeConfig {
	c.APIKey = MaskAPIKey(c.APIKey)
	return c
}

// MaskAPIKey keeps the last four characters of a key
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// Settings converts the runtime config back into a persisted record,
// carrying over created_at from prev
func (c RuntimeConfig) Settings(prev *Settings) *Settings {
	s := &Settings{
		Provider:     c.Provider.String(),
		APIKey:       c.APIKey,
		Model:        c.Model,
		BaseURL:      c.BaseURL,
		Relax:        c.RelaxValidation,
		Debug:        c.Debug,
		WriteBack:    c.WriteBack,
		MaxDiffChars: c.MaxDiffChars,
	}
	if prev != nil {
		s.CreatedAt = prev.CreatedAt
	}
	return s
}

// Resolve merges persisted settings with overrides.
// Precedence per field: non-empty override > persisted value > fallback.
// The API key follows its own chain: generic override > provider-specific override > persisted.
func Resolve(persisted *Settings, overrides OverrideSet) (*RuntimeConfig, error) {
	if persisted == nil {
		persisted = DefaultSettings()
	}

	cfg := &RuntimeConfig{
		Provider: ParseProvider(overrideString(overrides.Provider, persisted.Provider)),
		Model:    overrideString(overrides.Model, persisted.Model),
		BaseURL:  overrideString(overrides.BaseURL, persisted.BaseURL),
	}

	var err error
	if cfg.RelaxValidation, err = overrideBool(KeyRelax, overrides.Relax, persisted.Relax); err != nil {
		return nil, err
	}
	if cfg.Debug, err = overrideBool(KeyDebug, overrides.Debug, persisted.Debug); err != nil {
		return nil, err
	}
	if cfg.WriteBack, err = overrideBool(KeyWriteBack, overrides.WriteBack, persisted.WriteBack); err != nil {
		return nil, err
	}
	if cfg.MaxDiffChars, err = overrideInt(KeyMaxDiffChars, overrides.MaxDiffChars, persisted.MaxDiffChars); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" && cfg.Provider.Known() {
		cfg.BaseURL = cfg.Provider.DefaultBaseURL(overrides.OllamaHost)
	}

	cfg.APIKey = resolveAPIKey(cfg.Provider, persisted.APIKey, overrides)

	if cfg.Provider == "" || cfg.Model == "" {
		missing := "provider"
		if cfg.Provider != "" {
			missing = "model"
		}
		return nil, &Error{
			Kind:    KindIncomplete,
			Message: fmt.Sprintf("no %s configured; run 'aicommit configure' first", missing),
		}
	}

	return cfg, nil
}

func resolveAPIKey(p Provider, persisted string, overrides OverrideSet) string {
	if p.Variant() == VariantLocal {
		return ""
	}
	if overrides.APIKey != "" {
		return overrides.APIKey
	}
	if p.Known() {
		if key := overrides.providerAPIKey(p); key != "" {
			return key
		}
	}
	return persisted
}

// Resolver loads persisted settings, resolves them and performs write-back
type Resolver struct {
	store *Store
	now   func() time.Time
}

// NewResolver creates a Resolver backed by store
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store, now: time.Now}
}

// Resolve loads the settings file and merges overrides into a RuntimeConfig.
// When write-back is enabled the merged config is persisted.
func (r *Resolver) Resolve(overrides OverrideSet) (*RuntimeConfig, error) {
	persisted, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	cfg, err := Resolve(persisted, overrides)
	if err != nil {
		return nil, err
	}

	if cfg.WriteBack {
		if err := r.store.Save(cfg.Settings(persisted), r.now()); err != nil {
			return nil, fmt.Errorf("failed to write back settings: %w", err)
		}
		log.Info("Configuration written back to %s", r.store.Path())
	}

	return cfg, nil
}
