// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrPythonNotFound is returned when no Python interpreter is resolvable on
// the search path. This is a terminal error: setup cannot proceed without it.
var ErrPythonNotFound = errors.New("python interpreter not found on PATH")

// Interpreter is a resolved Python executable.
type Interpreter struct {
	// Path is the absolute path to the executable.
	Path string
}

// candidates returns interpreter names to probe, in order of preference.
// Windows installs commonly expose the 'py' launcher and 'python'; elsewhere
// 'python3' is the conventional name and bare 'python' a fallback.
func candidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"py", "python", "python3"}
	}
	return []string{"python3", "python"}
}

// Find resolves a Python interpreter. A non-empty override is used verbatim:
// values containing a path separator are checked on disk, bare names are
// looked up on PATH. With no override, the platform candidate list is probed
// in order and the first hit wins.
func Find(override string) (*Interpreter, error) {
	if override != "" {
		if strings.ContainsRune(override, os.PathSeparator) || strings.ContainsRune(override, '/') {
			if _, err := os.Stat(override); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrPythonNotFound, override)
			}
			return &Interpreter{Path: override}, nil
		}
		path, err := exec.LookPath(override)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrPythonNotFound, override)
		}
		return &Interpreter{Path: path}, nil
	}

	for _, name := range candidates() {
		if path, err := exec.LookPath(name); err == nil {
			return &Interpreter{Path: path}, nil
		}
	}

	return nil, ErrPythonNotFound
}

// Version runs the interpreter with --version and returns the reported
// version string (e.g., "3.12.1").
func (i *Interpreter) Version(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer

	res := run(ctx, &stdout, &stderr, nil, "", i.Path, "--version")
	if !res.Success() {
		if res.Error != nil {
			return "", res.Error
		}
		return "", fmt.Errorf("%s --version exited with code %d", i.Path, res.ExitCode)
	}

	// Python 2 printed the banner to stderr; tolerate both streams.
	out := strings.TrimSpace(stdout.String())
	if out == "" {
		out = strings.TrimSpace(stderr.String())
	}
	return strings.TrimPrefix(out, "Python "), nil
}

// CheckModule verifies the named module is importable by the interpreter.
func (i *Interpreter) CheckModule(ctx context.Context, name string) error {
	var stderr bytes.Buffer

	res := run(ctx, io.Discard, &stderr, nil, "", i.Path, "-c", "import "+name)
	if res.Success() {
		return nil
	}
	if res.Error != nil {
		return res.Error
	}
	return fmt.Errorf("module %q is not importable (exit code %d)", name, res.ExitCode)
}
