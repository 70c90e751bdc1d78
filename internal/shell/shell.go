// SPDX-License-Identifier: MPL-2.0

// Package shell runs small scripts through an embedded POSIX shell
// interpreter, so hooks behave the same on every platform without requiring
// /bin/sh (notably on Windows, where the launcher scripts originated).
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes scripts in-process with mvdan/sh.
type Runner struct {
	// Dir is the working directory for the script.
	Dir string
	// Env is the full environment for the script (os.Environ layout).
	Env []string
	// Stdin, Stdout and Stderr are the script's stdio. Nil streams are
	// replaced by discard/empty equivalents by the interpreter.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Validate parses the script without running it, so a syntax error surfaces
// before any side effects.
func Validate(script string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Run parses and executes the script, returning the script's exit status.
// A non-zero status is reported through the int alone; the error return is
// reserved for parse and interpreter failures.
func (r *Runner) Run(ctx context.Context, script string, args ...string) (int, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return 1, fmt.Errorf("failed to parse script: %w", err)
	}

	opts := []interp.RunnerOption{
		interp.Dir(r.Dir),
		interp.Env(expand.ListEnviron(r.Env...)),
		interp.StdIO(r.Stdin, r.Stdout, r.Stderr),
	}
	// "--" keeps args that look like flags (e.g. "--port") out of the
	// interpreter's own option parsing.
	if len(args) > 0 {
		params := append([]string{"--"}, args...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return 1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return int(exitStatus), nil
		}
		return 1, fmt.Errorf("script execution failed: %w", err)
	}
	return 0, nil
}
