package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxDiffChars is the diff limit used when the settings file has none
	DefaultMaxDiffChars = 20000

	configDirName  = "aicommit"
	configFileName = "config.json"
)

// Settings is the persisted configuration record
type Settings struct {
	Provider     string `json:"provider" mapstructure:"provider"`
	APIKey       string `json:"api_key" mapstructure:"api_key"`
	Model        string `json:"model" mapstructure:"model"`
	BaseURL      string `json:"base_url" mapstructure:"base_url"`
	Relax        bool   `json:"relax" mapstructure:"relax"`
	Debug        bool   `json:"debug" mapstructure:"debug"`
	WriteBack    bool   `json:"write_back" mapstructure:"write_back"`
	MaxDiffChars int    `json:"max_diff_chars" mapstructure:"max_diff_chars"`
	CreatedAt    string `json:"created_at,omitempty" mapstructure:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty" mapstructure:"updated_at"`
}

// DefaultSettings returns the settings used before the first configure
func DefaultSettings() *Settings {
	return &Settings{
		MaxDiffChars: DefaultMaxDiffChars,
	}
}

// settingsFile is the on-disk shape. Booleans are stored as 0/1.
type settingsFile struct {
	Provider     string `json:"provider"`
	APIKey       string `json:"api_key"`
	Model        string `json:"model"`
	BaseURL      string `json:"base_url"`
	Relax        int    `json:"relax"`
	Debug        int    `json:"debug"`
	WriteBack    int    `json:"write_back"`
	MaxDiffChars int    `json:"max_diff_chars"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DefaultPath returns the settings path.
// Priority: AICOMMIT_CONFIG > $XDG_CONFIG_HOME/aicommit/config.json > ~/.config/aicommit/config.json
func DefaultPath() (string, error) {
	if p := os.Getenv("AICOMMIT_CONFIG"); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, configFileName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, configFileName), nil
}

// Store reads and writes the settings file. It is the only writer of that file.
type Store struct {
	path string
}

// NewStore creates a Store for the given path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the settings file
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Exists reports whether the settings file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the settings file. A missing file yields DefaultSettings.
func (s *Store) Load() (*Settings, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to stat settings file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault("max_diff_chars", DefaultMaxDiffChars)

	if err := v.ReadInConfig(); err != nil {
		return nil, &Error{
			Kind:    KindInvalidPersistedFormat,
			Message: fmt.Sprintf("failed to read %s", s.path),
			Err:     err,
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, &Error{
			Kind:    KindInvalidPersistedFormat,
			Message: fmt.Sprintf("failed to decode %s", s.path),
			Err:     err,
		}
	}

	return &settings, nil
}

// Save writes settings, keeping created_at and stamping updated_at
func (s *Store) Save(settings *Settings, now time.Time) error {
	if settings == nil {
		return fmt.Errorf("settings are nil")
	}

	stamp := now.UTC().Format(time.RFC3339)
	createdAt := settings.CreatedAt
	if createdAt == "" {
		createdAt = stamp
	}

	data, err := json.MarshalIndent(settingsFile{
		Provider:     settings.Provider,
		APIKey:       settings.APIKey,
		Model:        settings.Model,
		BaseURL:      settings.BaseURL,
		Relax:        boolToInt(settings.Relax),
		Debug:        boolToInt(settings.Debug),
		WriteBack:    boolToInt(settings.WriteBack),
		MaxDiffChars: settings.MaxDiffChars,
		CreatedAt:    createdAt,
		UpdatedAt:    stamp,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.Dir(), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to a sibling temp file and rename so readers never see a partial file
	tmp, err := os.CreateTemp(s.Dir(), ".config-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set settings permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	settings.CreatedAt = createdAt
	settings.UpdatedAt = stamp
	return nil
}
