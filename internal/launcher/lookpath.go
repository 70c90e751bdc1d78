// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var errNotFoundInEnv = errors.New("executable not found in child PATH")

// lookPathEnv resolves a bare command name against the PATH entry of the
// given environment slice. Names containing a separator are returned as-is.
func lookPathEnv(name string, env []string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return name, nil
	}

	var pathVar string
	for _, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key == "PATH" || (runtime.GOOS == "windows" && strings.EqualFold(key, "PATH")) {
			pathVar = value
			break
		}
	}

	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			continue
		}
		for _, candidate := range executableNames(name) {
			full := filepath.Join(dir, candidate)
			info, err := os.Stat(full)
			if err != nil || info.IsDir() {
				continue
			}
			if runtime.GOOS == "windows" || info.Mode()&0o111 != 0 {
				return full, nil
			}
		}
	}
	return "", errNotFoundInEnv
}

func executableNames(name string) []string {
	if runtime.GOOS != "windows" {
		return []string{name}
	}
	if strings.Contains(name, ".") {
		return []string{name}
	}
	return []string{name + ".exe", name + ".bat", name + ".cmd", name}
}
