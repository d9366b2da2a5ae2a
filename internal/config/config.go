// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig configures the snapshot history of the data directory.
type HistoryConfig struct {
	// Enabled turns on a git commit after every persisted mutation.
	Enabled     bool   `yaml:"enabled"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Config is the application configuration.
type Config struct {
	// DataDir holds the project document, the image blobs, and the
	// snapshot history.
	DataDir string `yaml:"data_dir"`

	// MaxDocumentBytes caps the structured document slot. 0 keeps the
	// default (~5 MiB, the quota of the original storage slot).
	MaxDocumentBytes int64 `yaml:"max_document_bytes"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	History HistoryConfig `yaml:"history"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir:  "./data",
		LogLevel: "info",
		History: HistoryConfig{
			Enabled:     true,
			AuthorName:  "estudio",
			AuthorEmail: "estudio@localhost",
		},
	}
}

// Load reads the configuration at path, filling omitted fields with
// defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// DocumentPath returns the structured document slot path.
func (c *Config) DocumentPath() string {
	return filepath.Join(c.DataDir, "project.json")
}

// BlobDir returns the image blob directory.
func (c *Config) BlobDir() string {
	return filepath.Join(c.DataDir, "images")
}
