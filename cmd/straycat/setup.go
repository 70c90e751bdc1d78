// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"straycat-cli/internal/config"
	"straycat-cli/internal/issue"
	"straycat-cli/internal/pyenv"
	"straycat-cli/internal/shell"
	"straycat-cli/internal/steplog"

	"github.com/spf13/cobra"
)

var (
	setupPython       string
	setupVenvDir      string
	setupRequirements string
	setupForce        bool
	setupLogFile      string

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Create the virtual environment and install dependencies",
		Long: `Create the project's Python virtual environment and install the pinned
dependencies from the requirements manifest.

The command is idempotent: an existing environment is reused, and when the
manifest has not changed since the last successful setup the install steps
are skipped entirely. Use --force to reinstall anyway.

With --log-file, every step is also appended to a log file with timestamps,
which is the first thing to read when setup fails on someone else's machine.`,
		RunE: runSetup,
	}
)

func init() {
	setupCmd.Flags().StringVar(&setupPython, "python", "", "python interpreter to use (default: discover on PATH)")
	setupCmd.Flags().StringVar(&setupVenvDir, "venv-dir", "", "virtual environment directory (default from config)")
	setupCmd.Flags().StringVar(&setupRequirements, "requirements", "", "requirements manifest (default from config)")
	setupCmd.Flags().BoolVar(&setupForce, "force", false, "reinstall dependencies even when the manifest is unchanged")
	setupCmd.Flags().StringVar(&setupLogFile, "log-file", "", "append step logs to this file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	root := projectDir

	python := firstNonEmpty(setupPython, cfg.Python)
	venvDir := firstNonEmpty(setupVenvDir, cfg.VenvDir)
	requirements := firstNonEmpty(setupRequirements, cfg.Requirements)
	logFile := firstNonEmpty(setupLogFile, cfg.LogFile)

	logger := steplog.New(os.Stderr, verbose)
	if logFile != "" {
		if err := logger.AttachFile(logFile); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = logger.Close() }()
	}

	ctx := cmd.Context()
	if err := runHooks(ctx, logger, root, "pre_setup", cfg.Hooks.PreSetup); err != nil {
		return err
	}

	summary, err := pyenv.Bootstrap(ctx, pyenv.BootstrapOptions{
		Root:           root,
		PythonOverride: python,
		VenvDir:        venvDir,
		Requirements:   requirements,
		Force:          setupForce,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Log:            logger,
	})
	if err != nil {
		return setupFailure(err)
	}

	if err := runHooks(ctx, logger, root, "post_setup", cfg.Hooks.PostSetup); err != nil {
		return err
	}

	switch {
	case summary.InstallSkipped:
		fmt.Println(SuccessStyle.Render("✓ environment up to date") +
			SubtitleStyle.Render(fmt.Sprintf(" (python %s, manifest unchanged)", summary.PythonVersion)))
	case summary.VenvCreated:
		fmt.Println(SuccessStyle.Render("✓ environment created") +
			SubtitleStyle.Render(fmt.Sprintf(" (python %s)", summary.PythonVersion)))
	default:
		fmt.Println(SuccessStyle.Render("✓ dependencies installed") +
			SubtitleStyle.Render(fmt.Sprintf(" (python %s)", summary.PythonVersion)))
	}
	fmt.Println(SubtitleStyle.Render("Next: ") + CmdStyle.Render("straycat run"))
	return nil
}

// setupFailure renders the issue card matching the failed step and wraps the
// error so the shell sees the child's exit code.
func setupFailure(err error) error {
	code := 1
	id := issue.VenvCreateFailedId

	var stepErr *pyenv.StepError
	switch {
	case errors.Is(err, pyenv.ErrPythonNotFound):
		id = issue.PythonNotFoundId
	case errors.Is(err, pyenv.ErrManifestNotFound):
		id = issue.ManifestNotFoundId
	case errors.As(err, &stepErr):
		code = stepErr.ExitCode()
		switch stepErr.Step {
		case pyenv.StepUpgradePip:
			id = issue.PipUpgradeFailedId
		case pyenv.StepInstall:
			id = issue.InstallFailedId
		}
	}

	printIssue(id)
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("setup failed: ")+formatErrorForDisplay(err, verbose))
	return &ExitError{Code: code, Err: err}
}

// runHooks executes the configured shell snippets in order, stopping at the
// first failure.
func runHooks(ctx context.Context, logger *steplog.Logger, root, phase string, hooks []string) error {
	for i, script := range hooks {
		logger.Debug("running hook", "phase", phase, "index", i)
		runner := &shell.Runner{
			Dir:    root,
			Env:    os.Environ(),
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		}
		code, err := runner.Run(ctx, script)
		if err != nil || code != 0 {
			logger.Error("hook failed", "phase", phase, "index", i, "exit_code", code)
			printIssue(issue.HookFailedId)
			if err == nil {
				err = fmt.Errorf("%s hook %d exited with code %d", phase, i, code)
			}
			if code == 0 {
				code = 1
			}
			return &ExitError{Code: code, Err: err}
		}
	}
	return nil
}

// printIssue renders one issue card to stderr.
func printIssue(id issue.Id) {
	if rendered, err := issue.Get(id).Render(issueStylePath()); err == nil {
		fmt.Fprintln(os.Stderr, rendered)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
