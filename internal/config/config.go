// Package config loads docindex configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/docindex/internal/logging"
	"github.com/jonwraymond/docindex/search"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Transports accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the complete docindex configuration.
type Config struct {
	Search SearchConfig   `yaml:"search" json:"search"`
	Cache  CacheConfig    `yaml:"cache" json:"cache"`
	Log    logging.Config `yaml:"log" json:"log"`
	Server ServerConfig   `yaml:"server" json:"server"`

	// Seed is an optional YAML or JSON file of documents loaded at startup.
	Seed string `yaml:"seed" json:"seed"`
}

// SearchConfig configures the weighted fields and matching options.
type SearchConfig struct {
	Fields  []search.Field      `yaml:"fields" json:"fields"`
	Options search.QueryOptions `yaml:"options" json:"options"`
}

// CacheConfig configures the query result cache.
type CacheConfig struct {
	// Size is the number of cached queries. Negative disables the cache.
	Size int `yaml:"size" json:"size"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Name         string `yaml:"name" json:"name"`
	Transport    string `yaml:"transport" json:"transport"`
	Addr         string `yaml:"addr" json:"addr"`
	MetricsAddr  string `yaml:"metrics_addr" json:"metrics_addr"`
	DefaultLimit int    `yaml:"default_limit" json:"default_limit"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Fields:  search.DefaultFields(),
			Options: search.DefaultQueryOptions(),
		},
		Cache: CacheConfig{Size: 128},
		Log:   logging.DefaultConfig(),
		Server: ServerConfig{
			Name:         "docindex",
			Transport:    TransportStdio,
			Addr:         "127.0.0.1:8080",
			DefaultLimit: 10,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the index or server would
// reject at startup.
func (c *Config) Validate() error {
	if err := search.ValidateFields(c.Search.Fields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Search.Options.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Addr == "" {
			return fmt.Errorf("%w: http transport needs server.addr", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Server.Transport)
	}
	if c.Server.DefaultLimit < 0 {
		return fmt.Errorf("%w: negative server.default_limit", ErrInvalidConfig)
	}
	return nil
}
