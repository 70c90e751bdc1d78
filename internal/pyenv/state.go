// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// StateFileName is the setup state file written next to the venv directory.
const StateFileName = ".straycat-state.toml"

// State records what the last successful setup installed. An unchanged
// manifest hash lets a later setup skip the install steps entirely.
type State struct {
	// PythonVersion is the interpreter version that built the environment.
	PythonVersion string `toml:"python_version"`
	// RequirementsSHA256 is the hex digest of the installed manifest.
	RequirementsSHA256 string `toml:"requirements_sha256"`
	// UpdatedAt is when setup last completed successfully.
	UpdatedAt time.Time `toml:"updated_at"`
}

// LoadState reads the state file from root. A missing file is not an error;
// it returns (nil, nil) so callers treat the environment as never set up.
func LoadState(root string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(root, StateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read setup state: %w", err)
	}

	var st State
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse setup state: %w", err)
	}
	return &st, nil
}

// SaveState writes the state file into root.
func SaveState(root string, st *State) error {
	data, err := toml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode setup state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, StateFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write setup state: %w", err)
	}
	return nil
}

// HashFile returns the SHA-256 hex digest of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
