// Package config loads and validates the leadmagnet.yaml manifest.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultManifestName is the manifest filename looked up in the working
// directory when no --config flag is given.
const DefaultManifestName = "leadmagnet.yaml"

// Manifest is the top-level configuration for the CLI and the status
// server.
type Manifest struct {
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	Watch  WatchConfig  `yaml:"watch"`
}

// APIConfig configures access to the platform backend.
type APIConfig struct {
	// BaseURL is the platform API root, e.g. https://api.example.com.
	BaseURL string `yaml:"base_url"`
	// TenantID identifies the workspace whose jobs are read.
	TenantID string `yaml:"tenant_id"`
	// AuthToken is the bearer token for the API. Optional for local
	// development against an unauthenticated backend.
	AuthToken string `yaml:"auth_token"`
	// Timeout bounds each API request. Zero means the default.
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the local status HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8089".
	Addr string `yaml:"addr"`
}

// WatchConfig configures the polling watcher.
type WatchConfig struct {
	// Interval between refreshes. Zero means the default.
	Interval time.Duration `yaml:"interval"`
}

// Defaults applied where the manifest is silent.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultServerAddr    = ":8089"
	DefaultWatchInterval = 5 * time.Second
)

// ParseManifest parses manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.applyDefaults()
	return &m, nil
}

// applyDefaults fills in defaults for optional settings.
func (m *Manifest) applyDefaults() {
	if m.API.Timeout == 0 {
		m.API.Timeout = DefaultTimeout
	}
	if m.Server.Addr == "" {
		m.Server.Addr = DefaultServerAddr
	}
	if m.Watch.Interval == 0 {
		m.Watch.Interval = DefaultWatchInterval
	}
}

// Validate checks the manifest for required settings.
func (m *Manifest) Validate() error {
	if m.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if m.API.TenantID == "" {
		return fmt.Errorf("api.tenant_id is required")
	}
	return nil
}
