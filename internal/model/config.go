package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AIConfig holds settings for the AI suggestion backend.
type AIConfig struct {
	// Model is the chat-completions model name.
	Model string `mapstructure:"model" yaml:"model"`

	// MaxTokens caps the response length per request.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`

	// BaseURL overrides the API endpoint, e.g. for a local proxy.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// HistoryConfig holds settings for the local suggestion history.
type HistoryConfig struct {
	// Enabled controls whether received suggestions are recorded.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Limit is the maximum number of entries shown in the history view.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/codeassist/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "codeassist", "config.yaml")
}

// DefaultDBPath returns the default path for the suggestion history database.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "history.db")
	}
	return filepath.Join(home, ".config", "codeassist", "history.db")
}

// DefaultLogPath returns the default path for the diagnostic log file.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "codeassist.log")
	}
	return filepath.Join(home, ".config", "codeassist", "codeassist.log")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		AI: AIConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 2048,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   100,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 2048)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 100)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.AI.MaxTokens <= 0 {
		cfg.AI.MaxTokens = 2048
	}
	if cfg.History.Limit <= 0 {
		cfg.History.Limit = 100
	}

	return cfg, nil
}

// SaveConfig writes the configuration back to the given YAML file path,
// creating parent directories as needed.
func SaveConfig(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("ai.model", cfg.AI.Model)
	v.Set("ai.max_tokens", cfg.AI.MaxTokens)
	v.Set("ai.base_url", cfg.AI.BaseURL)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.limit", cfg.History.Limit)
	v.Set("display.theme", cfg.Display.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
