// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Result captures the outcome of one external command invocation.
type Result struct {
	// ExitCode is the command's exit code (0 on success).
	ExitCode int
	// Error is set for infrastructure failures (command not startable,
	// context canceled), not for ordinary non-zero exits.
	Error error
	// Output holds captured stdout for capture-mode runs.
	Output string
	// ErrOutput holds captured stderr for capture-mode runs.
	ErrOutput string
}

// Success reports whether the command exited zero with no infrastructure error.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0 && r.Error == nil
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code int, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code int) *Result {
	return &Result{ExitCode: code}
}

// run executes a command with the given environment, streaming its output to
// the supplied writers, and converts the outcome into a Result.
func run(ctx context.Context, stdout, stderr io.Writer, env []string, dir, name string, args ...string) *Result {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if env != nil {
		cmd.Env = env
	}
	if dir != "" {
		cmd.Dir = dir
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return NewExitCodeResult(exitErr.ExitCode())
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", name, err))
	}

	return NewSuccessResult()
}
