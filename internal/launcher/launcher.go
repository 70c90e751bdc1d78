// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"straycat-cli/internal/pyenv"
	"straycat-cli/internal/shell"
)

// ErrEntrypointNotFound is returned when the application entrypoint file is
// missing from the project.
var ErrEntrypointNotFound = errors.New("application entrypoint not found")

// Launcher runs commands inside a project's virtual environment.
type Launcher struct {
	// Root is the project directory; relative paths resolve against it.
	Root string
	// Venv is the environment commands run in. It must already exist.
	Venv pyenv.Venv
	// EnvFiles are dotenv files merged into the child environment, in order.
	EnvFiles []string
	// Stdin, Stdout and Stderr are inherited by launched processes.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// LaunchOptions configures a Streamlit launch.
type LaunchOptions struct {
	// Entrypoint is the application script (relative to Root unless absolute).
	Entrypoint string
	// Host and Port are passed to Streamlit as --server.address/--server.port.
	Host string
	Port int
	// ExtraArgs are appended verbatim after the server flags.
	ExtraArgs []string
}

// Launch starts the Streamlit application in the foreground and blocks until
// it exits, returning its exit code. The environment check runs first so a
// missing venv reports "run setup" instead of a python spawn error.
func (l *Launcher) Launch(ctx context.Context, opts LaunchOptions) *pyenv.Result {
	if !l.Venv.Exists() {
		return pyenv.NewErrorResult(1, pyenv.ErrVenvNotFound)
	}

	entrypoint := opts.Entrypoint
	if !filepath.IsAbs(entrypoint) {
		entrypoint = filepath.Join(l.Root, entrypoint)
	}
	if info, err := os.Stat(entrypoint); err != nil || info.IsDir() {
		return pyenv.NewErrorResult(1, fmt.Errorf("%w: %s", ErrEntrypointNotFound, entrypoint))
	}

	args := []string{
		"-m", "streamlit", "run", entrypoint,
		"--server.address", opts.Host,
		"--server.port", strconv.Itoa(opts.Port),
	}
	args = append(args, opts.ExtraArgs...)

	return l.spawn(ctx, l.Venv.Python(), args...)
}

// Exec runs an arbitrary command inside the activated environment and returns
// its exit code. argv[0] is resolved through the activated PATH, so "python"
// and "pip" hit the venv binaries.
func (l *Launcher) Exec(ctx context.Context, argv []string) *pyenv.Result {
	if len(argv) == 0 {
		return pyenv.NewErrorResult(1, errors.New("no command given"))
	}
	if !l.Venv.Exists() {
		return pyenv.NewErrorResult(1, pyenv.ErrVenvNotFound)
	}
	return l.spawn(ctx, argv[0], argv[1:]...)
}

// ExecVirtual runs a script through the embedded shell with the activated
// environment, instead of spawning a system shell.
func (l *Launcher) ExecVirtual(ctx context.Context, script string, args ...string) *pyenv.Result {
	if !l.Venv.Exists() {
		return pyenv.NewErrorResult(1, pyenv.ErrVenvNotFound)
	}
	env, err := l.buildEnv()
	if err != nil {
		return pyenv.NewErrorResult(1, err)
	}

	runner := &shell.Runner{
		Dir:    l.Root,
		Env:    env,
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}
	code, err := runner.Run(ctx, script, args...)
	if err != nil {
		return pyenv.NewErrorResult(code, err)
	}
	return pyenv.NewExitCodeResult(code)
}

func (l *Launcher) spawn(ctx context.Context, name string, args ...string) *pyenv.Result {
	env, err := l.buildEnv()
	if err != nil {
		return pyenv.NewErrorResult(1, err)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = l.Root
	cmd.Env = env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	// PATH lookups for bare names must see the venv bin dir, not the parent
	// process PATH, so resolve by hand against the child environment.
	if resolved, lookErr := lookPathEnv(name, env); lookErr == nil {
		cmd.Path = resolved
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return pyenv.NewExitCodeResult(exitErr.ExitCode())
		}
		return pyenv.NewErrorResult(1, fmt.Errorf("failed to start %s: %w", name, err))
	}
	return pyenv.NewSuccessResult()
}
