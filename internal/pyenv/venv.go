// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrVenvNotFound is returned by operations that need an existing virtual
// environment when the directory is absent. The remedy is running setup.
var ErrVenvNotFound = errors.New("virtual environment not found (run setup first)")

// Venv locates a virtual environment inside a project root.
type Venv struct {
	// Root is the project directory.
	Root string
	// Dir is the environment directory, relative to Root unless absolute.
	Dir string
}

// NewVenv creates a Venv for the given project root and directory name.
func NewVenv(root, dir string) Venv {
	return Venv{Root: root, Dir: dir}
}

// Path returns the absolute environment directory.
func (v Venv) Path() string {
	if filepath.IsAbs(v.Dir) {
		return v.Dir
	}
	return filepath.Join(v.Root, v.Dir)
}

// Exists reports whether the environment directory is present. This is the
// same existence predicate the launch procedure gates on.
func (v Venv) Exists() bool {
	info, err := os.Stat(v.Path())
	return err == nil && info.IsDir()
}

// BinDir returns the directory holding the environment's executables
// ("Scripts" on Windows, "bin" elsewhere).
func (v Venv) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(v.Path(), "Scripts")
	}
	return filepath.Join(v.Path(), "bin")
}

// Python returns the environment's interpreter path.
func (v Venv) Python() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(v.BinDir(), name)
}

// Create runs 'python -m venv' to build the environment, streaming command
// output to the writers. Creation is skipped upstream when Exists() is true;
// this method always invokes the interpreter.
func (v Venv) Create(ctx context.Context, interp *Interpreter, stdout, stderr io.Writer) *Result {
	return run(ctx, stdout, stderr, nil, "", interp.Path, "-m", "venv", v.Path())
}

// Environ returns a copy of base with the environment activated: VIRTUAL_ENV
// set, the bin directory prepended to PATH, and PYTHONHOME dropped. This
// mirrors what the stock activate script exports.
func (v Venv) Environ(base []string) []string {
	env := make([]string, 0, len(base)+2)

	pathSet := false
	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			env = append(env, kv)
			continue
		}
		switch {
		case strings.EqualFold(key, "PYTHONHOME") || key == "VIRTUAL_ENV":
			// dropped
		case isPathKey(key):
			env = append(env, key+"="+v.BinDir()+string(os.PathListSeparator)+kv[len(key)+1:])
			pathSet = true
		default:
			env = append(env, kv)
		}
	}

	if !pathSet {
		env = append(env, "PATH="+v.BinDir())
	}
	env = append(env, "VIRTUAL_ENV="+v.Path())

	return env
}

// isPathKey matches the PATH variable, case-insensitively on Windows where
// the environment block stores it as "Path".
func isPathKey(key string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(key, "PATH")
	}
	return key == "PATH"
}
