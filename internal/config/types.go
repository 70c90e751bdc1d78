// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultVenvDir is the conventional virtual environment directory name.
	DefaultVenvDir = ".venv"
	// DefaultRequirements is the conventional dependency manifest name.
	DefaultRequirements = "requirements.txt"
	// DefaultEntrypoint is the conventional app entrypoint passed to streamlit.
	DefaultEntrypoint = "main.py"
	// DefaultServePort is the port both streamlit and the native server default to.
	DefaultServePort = 8501
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidVenvDir is returned when venv_dir is empty or whitespace-only.
	ErrInvalidVenvDir = errors.New("invalid venv dir")
	// ErrInvalidServePort is returned when serve.port is outside the valid range.
	ErrInvalidServePort = errors.New("invalid serve port")
	// ErrInvalidHook is returned when a hook entry is empty or whitespace-only.
	ErrInvalidHook = errors.New("invalid hook")
)

type (
	// ColorScheme selects the terminal color scheme for rendered output.
	ColorScheme string

	// Config is the straycat configuration tree. Zero values fall back to the
	// defaults applied by DefaultConfig and the Viper layer.
	Config struct {
		// Python optionally pins the interpreter used to create the venv.
		// Empty means discover one on PATH.
		Python string `json:"python,omitempty" mapstructure:"python"`

		// VenvDir is the virtual environment directory, relative to the project root.
		VenvDir string `json:"venv_dir" mapstructure:"venv_dir"`

		// Requirements is the dependency manifest path, relative to the project root.
		Requirements string `json:"requirements" mapstructure:"requirements"`

		// Entrypoint is the file handed to the serving command on launch.
		Entrypoint string `json:"entrypoint" mapstructure:"entrypoint"`

		// DataDir is where the costing CSV sheets live. Defaults to the
		// project root, matching where the app itself writes them.
		DataDir string `json:"data_dir" mapstructure:"data_dir"`

		// LogFile, when set, makes setup append its diagnostics to this file.
		LogFile string `json:"log_file,omitempty" mapstructure:"log_file"`

		// Hooks are shell snippets run in the built-in interpreter around setup.
		Hooks HooksConfig `json:"hooks" mapstructure:"hooks"`

		// Serve configures both 'straycat run' (port forwarding to streamlit)
		// and the native 'straycat serve' HTTP server.
		Serve ServeConfig `json:"serve" mapstructure:"serve"`

		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// HooksConfig holds shell snippets executed in the built-in sh interpreter.
	HooksConfig struct {
		// PreSetup runs before the interpreter check.
		PreSetup []string `json:"pre_setup" mapstructure:"pre_setup"`
		// PostSetup runs after a fully successful setup.
		PostSetup []string `json:"post_setup" mapstructure:"post_setup"`
	}

	// ServeConfig holds the listen address for app serving.
	ServeConfig struct {
		Host string `json:"host" mapstructure:"host"`
		Port int    `json:"port" mapstructure:"port"`
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid reports whether the color scheme is one of the known values.
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	}
	return false
}

// Validate checks constraints the CUE schema cannot express (or that must
// hold even when no config file was loaded at all).
func (c *Config) Validate() error {
	if strings.TrimSpace(c.VenvDir) == "" {
		return fmt.Errorf("%w: venv_dir must not be blank", ErrInvalidVenvDir)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("%w: %d (must be 1-65535)", ErrInvalidServePort, c.Serve.Port)
	}
	if !c.UI.ColorScheme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}
	for section, hooks := range map[string][]string{
		"hooks.pre_setup":  c.Hooks.PreSetup,
		"hooks.post_setup": c.Hooks.PostSetup,
	} {
		for i, h := range hooks {
			if strings.TrimSpace(h) == "" {
				return fmt.Errorf("%w: %s[%d] is blank", ErrInvalidHook, section, i)
			}
		}
	}
	return nil
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		VenvDir:      DefaultVenvDir,
		Requirements: DefaultRequirements,
		Entrypoint:   DefaultEntrypoint,
		DataDir:      ".",
		Serve: ServeConfig{
			Host: "127.0.0.1",
			Port: DefaultServePort,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
