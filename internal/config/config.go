// Package config provides configuration management for the lab record
// store.
//
// Config file locations (priority order):
//  1. $LABRECORD_CONFIG
//  2. ./labrecord.yaml
//  3. ~/.config/labrecord/config.yaml
//  4. /etc/labrecord/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape.
type Config struct {
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Seed     SeedConfig     `yaml:"seed"`
}

// DatabaseConfig locates the durable store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig bounds repository resource usage.
type StorageConfig struct {
	// MaxAttachmentBytes caps attachment payloads held in memory during
	// create/download. Zero means unbounded.
	MaxAttachmentBytes int64 `yaml:"max_attachment_bytes"`
}

// SeedConfig controls first-run bootstrap.
type SeedConfig struct {
	// AdminUsername, when set, is created as an Admin user if no user with
	// that username exists yet.
	AdminUsername string `yaml:"admin_username"`
}

// Load finds and loads the config file, or returns defaults if none found.
// The second return is the path actually used ("" for defaults).
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Database: DatabaseConfig{Path: "./labrecord.db"},
		Storage:  StorageConfig{MaxAttachmentBytes: 32 << 20},
		Seed:     SeedConfig{AdminUsername: "admin"},
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = "./labrecord.db"
	}
}
