package config

import (
	"os"
	"strings"
)

// Loader loads configuration from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates a manifest from the given path.
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, err
	}

	m, err := ParseManifest(data)
	if err != nil {
		// Translate YAML parser noise into an actionable message.
		if strings.Contains(err.Error(), "yaml:") || strings.Contains(err.Error(), "unmarshal") {
			return nil, NewConfigParseError(path, err)
		}
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, NewConfigInvalidError(path, err.Error())
	}

	return m, nil
}
