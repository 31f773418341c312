// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"cloud-adapter/internal/errors"
	"cloud-adapter/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Hyperstack contains provider settings
	Hyperstack HyperstackConfig `json:"hyperstack"`

	// Catalog contains catalog settings
	Catalog CatalogConfig `json:"catalog"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// HyperstackConfig contains Hyperstack-specific settings
type HyperstackConfig struct {
	// APIURL is the base URL of the compute API
	APIURL string `json:"api_url"`

	// APIKeyPath is the credential file; "~" expands to the home directory
	APIKeyPath string `json:"api_key_path"`

	// RequestTimeoutSeconds bounds the credential probe
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`

	// DefaultRegion is used by commands when no region is given
	DefaultRegion string `json:"default_region,omitempty"`
}

// RequestTimeout returns the probe timeout as a duration
func (c HyperstackConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CatalogConfig contains catalog settings
type CatalogConfig struct {
	// Path is an HCL catalog file; empty means the embedded catalog
	Path string `json:"path,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Hyperstack: HyperstackConfig{
			APIURL:                "https://infrahub-api.nexgencloud.com/v1",
			APIKeyPath:            "~/.hyperstack/api_key",
			RequestTimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.cloud-adapter.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cloud-adapter.json")
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "parse %s", path)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that every section is usable
func (c *Config) Validate() error {
	var err error
	if c.Hyperstack.APIURL == "" {
		err = multierr.Append(err, errors.Config("hyperstack.api_url is required"))
	}
	if c.Hyperstack.APIKeyPath == "" {
		err = multierr.Append(err, errors.Config("hyperstack.api_key_path is required"))
	}
	if c.Hyperstack.RequestTimeoutSeconds <= 0 {
		err = multierr.Append(err, errors.Config("hyperstack.request_timeout_seconds must be positive"))
	}
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		err = multierr.Append(err, errors.Newf(errors.TypeConfig, "output.default_format %q: must be cli or json", c.Output.DefaultFormat))
	}
	if lerr := c.Logging.Validate(); lerr != nil {
		err = multierr.Append(err, errors.Wrap(errors.TypeConfig, "logging", lerr))
	}
	return err
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
