package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseURL"`
	ModelName string `json:"modelName"`
	Provider  string `json:"provider"` // "openrouter" or "gemini"
	Language  string `json:"language"` // "en" or "zh"
	VaultPath string `json:"vaultPath"`
	InboxPath string `json:"inboxPath"`
	BatchSize int    `json:"batchSize"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://openrouter.ai/api/v1",
		ModelName: "anthropic/claude-3.5-sonnet",
		Provider:  "openrouter",
		Language:  "en",
		InboxPath: "Inbox",
		BatchSize: 3,
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.ModelName == "" {
		config.ModelName = defaults.ModelName
	}
	if config.Provider == "" {
		config.Provider = defaults.Provider
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.InboxPath == "" {
		config.InboxPath = defaults.InboxPath
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}

	return &config, nil
}

// ApplyEnv overrides config values from the environment. The API key
// variable read depends on the provider.
func (c *Config) ApplyEnv() {
	key := "OPENROUTER_API_KEY"
	if c.Provider == "gemini" {
		key = "GEMINI_API_KEY"
	}
	if v := os.Getenv(key); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("INBOX_VAULT"); v != "" {
		c.VaultPath = v
	}
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ConfigDir returns the application directory: ~/.config/inbox
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "inbox"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/inbox/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns the TUI log file path: ~/.config/inbox/inbox.log
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inbox.log"), nil
}
