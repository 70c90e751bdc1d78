// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// buildEnv assembles the child environment: the process environment, then the
// env files in order (later files win), then venv activation on top so PATH
// and VIRTUAL_ENV cannot be clobbered by a file.
func (l *Launcher) buildEnv() ([]string, error) {
	env := os.Environ()

	for _, file := range l.EnvFiles {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.Root, path)
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", file, err)
		}
		for k, v := range vars {
			env = setEnv(env, k, v)
		}
	}

	return l.Venv.Environ(env), nil
}

// setEnv replaces an existing KEY= entry or appends a new one.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
