// Package config loads the photokeeper configuration file. The Config
// struct is built once at startup and passed into components; there is no
// ambient global configuration state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"photokeeper/internal/models"
)

// Config represents the application configuration.
type Config struct {
	DatabasePath      string `yaml:"database_path"`
	LibraryRoot       string `yaml:"library_root"`
	OrganizePattern   string `yaml:"organize_pattern"`
	RetentionStrategy string `yaml:"retention_strategy"`
	UseTrash          bool   `yaml:"use_trash"`
	Workers           int    `yaml:"workers"`
	Verbose           bool   `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DatabasePath:      filepath.Join(homeDir, ".photokeeper", "catalog.db"),
		OrganizePattern:   "{year}/{year}-{month}-{day}",
		RetentionStrategy: string(models.KeepNewest),
		UseTrash:          true,
		Workers:           8,
	}
}

// Load reads configuration from a file, returning defaults when the file
// does not exist.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a file, creating parent directories.
func Save(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	if _, err := models.ParseRetentionStrategy(c.RetentionStrategy); err != nil {
		return err
	}
	if strings.Contains(c.OrganizePattern, "..") {
		return fmt.Errorf("organize_pattern must not contain '..'")
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "photokeeper", "config.yaml"), nil
}
