// SPDX-License-Identifier: Apache-2.0

// Package config handles reading and writing the tro configuration
// file, which carries the Trello API host and credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHost is the Trello API endpoint used when the config file does
// not override it.
const DefaultHost = "https://api.trello.com"

// Config represents the top-level application configuration.
type Config struct {
	// Host is the Trello API base URL (optional, defaults to DefaultHost)
	Host string `yaml:"host,omitempty"`

	// Key is the Trello API key
	Key string `yaml:"key"`

	// Token is the Trello API token authorizing this client
	Token string `yaml:"token"`
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "tro", "config.yaml"), nil
}

func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("no config file at %s (run 'tro config init' to create one)", configPath)
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	return cfg, nil
}

// Validate checks that the credentials needed for any API call are
// present.
func (c Config) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("config is missing 'key'")
	}
	if c.Token == "" {
		return fmt.Errorf("config is missing 'token'")
	}
	return nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Credentials live here, so keep the file user-readable only (0600).
	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}
