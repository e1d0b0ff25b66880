package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags and files cannot be trusted with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "bmp", "png":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	if c.Data.LevelSize <= 0 {
		return fmt.Errorf("invalid level size %d", c.Data.LevelSize)
	}
	if c.Output.MinimapScale <= 0 {
		return fmt.Errorf("invalid minimap scale %d", c.Output.MinimapScale)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", c.Render.Workers)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./poptex.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Poptex")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Poptex")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "poptex")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "poptex")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
