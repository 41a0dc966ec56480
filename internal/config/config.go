package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultResumeWindowHours bounds how old a persisted flow state may be
// and still be rehydrated on startup. Product policy, not an invariant.
const DefaultResumeWindowHours = 2

// Config represents the flat flowdeck configuration
type Config struct {
	Version           string `json:"version"`
	UserID            string `json:"user_id"`                       // USER-XXX, the active local profile
	ResumeWindowHours int    `json:"resume_window_hours,omitempty"` // 0 means default
}

// Dir returns the flowdeck home directory (~/.flowdeck).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".flowdeck"), nil
}

// LoadConfig reads config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ResumeWindowHoursOrDefault returns the configured resume window,
// falling back to the product default when unset.
func (c *Config) ResumeWindowHoursOrDefault() int {
	if c.ResumeWindowHours <= 0 {
		return DefaultResumeWindowHours
	}
	return c.ResumeWindowHours
}
