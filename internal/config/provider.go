// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the global config directory lookup when set.
	ConfigDirPath string
	// WorkDir overrides the directory searched for the project config file.
	// Empty means the process working directory.
	WorkDir string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolvePath returns the config file that would be (or was) loaded for the
// given options. An empty string means built-in defaults are in effect.
func ResolvePath(ctx context.Context, opts LoadOptions) (string, error) {
	_, path, err := loadWithOptions(ctx, opts)
	return path, err
}
