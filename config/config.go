// Package config loads and validates the client configuration from a
// YAML file. Credential fields may reference environment variables with
// the ${env:NAME} syntax so secrets stay out of config files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Store backend selectors.
const (
	StoreNone   = "none"
	StoreFile   = "file"
	StoreS3     = "s3"
	StoreMemory = "memory"
)

var storeTypes = []string{StoreNone, StoreFile, StoreS3, StoreMemory}

// Config is the complete client configuration.
type Config struct {
	// Version selects the API protocol version ("1.0" ... "2.1").
	Version string        `yaml:"version"`
	Auth    AuthConfig    `yaml:"auth"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// AuthConfig carries credentials. The v1 protocol family uses
// username/password, the v2 family an API key.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	APIKey   string `yaml:"api_key"`
}

// StoreConfig selects and configures the storage backend.
type StoreConfig struct {
	Type      string `yaml:"type"`
	Directory string `yaml:"directory"`  // file backend
	BucketURL string `yaml:"bucket_url"` // s3 backend, e.g. s3://bucket?region=us-east-1
	Prefix    string `yaml:"prefix"`     // s3 backend object key prefix
	// Memory backend tuning.
	MaxEntries int           `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig tunes the upstream HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads, parses, resolves and validates the configuration at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolveSecrets() error {
	for _, field := range []*string{&c.Auth.Username, &c.Auth.Password, &c.Auth.APIKey} {
		resolved, err := resolveSecret(*field)
		if err != nil {
			return err
		}
		*field = resolved
	}
	return nil
}

// Validate checks the configuration shape. The version string itself is
// validated when the client is constructed, so configs stay loadable by
// tooling that predates a new protocol version.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}

	switch c.Store.Type {
	case "", StoreNone, StoreFile, StoreMemory:
	case StoreS3:
		if c.Store.BucketURL == "" {
			return fmt.Errorf("store: bucket_url is required for type %q", StoreS3)
		}
	default:
		return fmt.Errorf("store: unsupported type %q, valid types are: %v", c.Store.Type, storeTypes)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unsupported level %q", c.Logging.Level)
	}

	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http: timeout must not be negative")
	}
	return nil
}
