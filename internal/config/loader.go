package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the user and local config directories.
const configFile = "woods.yaml"

// LoadWoods loads the woods configuration.
// Search order: customPath -> ~/.woods/configs/woods.yaml -> ./configs/woods.yaml -> embedded default
// Files are decoded over the defaults, so a partial file only overrides the keys it sets.
func LoadWoods(customPath string) (WoodsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return WoodsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseWoods(data)
		if err != nil {
			return WoodsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseWoods(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parseWoods(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseWoods(defaultWoodsYAML)
	if err != nil {
		return DefaultWoodsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseWoods decodes data over the hardcoded defaults and validates the result.
func parseWoods(data []byte) (WoodsConfig, error) {
	cfg := DefaultWoodsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".woods", "configs", filename)
}
