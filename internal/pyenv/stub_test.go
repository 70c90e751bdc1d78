// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// skipWithoutPOSIXShell skips tests whose stub interpreters are POSIX shell
// scripts and therefore cannot run on Windows.
func skipWithoutPOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub interpreters are POSIX shell scripts")
	}
}

// writeStubPython writes a fake interpreter into dir that understands the
// invocations setup and doctor make: --version, -m venv, -m pip, and
// -c "import <module>" (any module named nosuchmod fails). pipExit is the
// exit code every pip call returns.
func writeStubPython(t *testing.T, dir string, pipExit int) string {
	t.Helper()

	script := fmt.Sprintf(`#!/bin/sh
case "$1" in
  --version)
    echo "Python 3.12.0"
    exit 0
    ;;
  -m)
    case "$2" in
      venv)
        mkdir -p "$3/bin"
        cp "$0" "$3/bin/python"
        chmod +x "$3/bin/python"
        printf 'home = /usr\n' > "$3/pyvenv.cfg"
        exit 0
        ;;
      pip)
        shift 2
        echo "pip $*"
        exit %d
        ;;
    esac
    ;;
  -c)
    case "$2" in
      *nosuchmod*) exit 1 ;;
      *) exit 0 ;;
    esac
    ;;
esac
exit 0
`, pipExit)

	path := filepath.Join(dir, "python3")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub python: %v", err)
	}
	return path
}
