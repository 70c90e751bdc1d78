// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	mu sync.Mutex

	// globalConfig caches the config loaded by Get for the process lifetime.
	globalConfig *Config

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride forces Get to load a specific file (--config flag).
	configFilePathOverride string

	// workDirOverride is the directory Get resolves the project config in
	// (--project-dir flag).
	workDirOverride string
)

// Get returns the cached process-wide configuration, loading it on first use.
// Load failures fall back to defaults; commands that need to distinguish a
// broken config file from a missing one should use Provider.Load directly.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig
	}

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		WorkDir:        workDirOverride,
	})
	if err != nil {
		return DefaultConfig()
	}

	globalConfig = cfg
	return globalConfig
}

// SetConfigFilePathOverride sets an explicit config file for Get and clears
// the cache so the next Get reloads.
func SetConfigFilePathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = path
	globalConfig = nil
}

// SetWorkDirOverride sets the directory Get looks up the project config file
// in and clears the cache so the next Get reloads.
func SetWorkDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	workDirOverride = dir
	globalConfig = nil
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = dir
	globalConfig = nil
}

// Reset clears overrides and the cached config. Call from test cleanup to
// restore defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = ""
	configFilePathOverride = ""
	workDirOverride = ""
	globalConfig = nil
}
