package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// LoadConfigFile loads configuration from a YAML file on top of the defaults
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// UserConfigPath is where SaveConfigFile writes by default.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "assetkit", "config.yaml")
}

// SearchLocations lists the config files FindConfigFile tries, in order.
func SearchLocations() []string {
	return []string{
		"./assetkit.yaml",
		"./assetkit.yml",
		UserConfigPath(),
		filepath.Join(xdg.ConfigHome, "assetkit", "config.yml"),
		"/etc/assetkit/config.yaml",
		"/etc/assetkit/config.yml",
	}
}

// FindConfigFile searches for a config file in the standard locations.
// Returns empty string if not found (non-fatal)
func FindConfigFile() string {
	for _, path := range SearchLocations() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// SaveConfigFile saves configuration to a YAML file
func SaveConfigFile(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
