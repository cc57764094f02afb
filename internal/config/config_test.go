package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/docindex/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, search.DefaultFields(), cfg.Search.Fields)
	assert.Equal(t, search.DefaultQueryOptions(), cfg.Search.Options)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 128, cfg.Cache.Size)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
search:
  options:
    threshold: 0.3
cache:
  size: -1
log:
  level: debug
  format: json
server:
  transport: http
  addr: ":9000"
  metrics_addr: ":9100"
seed: docs.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Search.Options.Threshold)
	assert.Equal(t, 3, cfg.Search.Options.MinMatchCharLength, "unset keys keep defaults")
	assert.True(t, cfg.Search.Options.UseExtendedSearch)
	assert.Equal(t, search.DefaultFields(), cfg.Search.Fields)
	assert.Equal(t, -1, cfg.Cache.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, ":9100", cfg.Server.MetricsAddr)
	assert.Equal(t, "docindex", cfg.Server.Name)
	assert.Equal(t, "docs.yaml", cfg.Seed)
}

func TestLoad_CustomFields(t *testing.T) {
	path := writeConfig(t, `
search:
  fields:
    - name: title
      weight: 5
    - name: content
      weight: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []search.Field{{Name: "title", Weight: 5}, {Name: "content", Weight: 1}}, cfg.Search.Fields)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "search: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server:\n  transport: carrier-pigeon\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown field", func(c *Config) { c.Search.Fields = []search.Field{{Name: "body", Weight: 1}} }},
		{"no fields", func(c *Config) { c.Search.Fields = nil }},
		{"threshold", func(c *Config) { c.Search.Options.Threshold = 1.5 }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"transport", func(c *Config) { c.Server.Transport = "grpc" }},
		{"http addr", func(c *Config) { c.Server.Transport = TransportHTTP; c.Server.Addr = "" }},
		{"limit", func(c *Config) { c.Server.DefaultLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
