// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"straycat-cli/internal/steplog"
)

// Step names used in failure reports and log lines.
const (
	StepCheckInterpreter = "check interpreter"
	StepCreateVenv       = "create virtual environment"
	StepCheckManifest    = "check requirements manifest"
	StepUpgradePip       = "upgrade pip"
	StepInstall          = "install dependencies"
)

// StepError reports a setup step that exited non-zero. Later steps never run
// after one of these; the environment is left as-is.
type StepError struct {
	// Step is the failed step's name.
	Step string
	// Result is the failing command's outcome.
	Result *Result
}

// Error returns the failure description.
func (e *StepError) Error() string {
	if e.Result != nil && e.Result.Error != nil {
		return fmt.Sprintf("step %q failed: %v", e.Step, e.Result.Error)
	}
	code := 1
	if e.Result != nil {
		code = e.Result.ExitCode
	}
	return fmt.Sprintf("step %q failed with exit code %d", e.Step, code)
}

// Unwrap exposes the infrastructure error, if any.
func (e *StepError) Unwrap() error {
	if e.Result == nil {
		return nil
	}
	return e.Result.Error
}

// ExitCode returns the exit code the CLI should surface for this failure.
func (e *StepError) ExitCode() int {
	if e.Result == nil || e.Result.ExitCode == 0 {
		return 1
	}
	return e.Result.ExitCode
}

// BootstrapOptions configures one setup run.
type BootstrapOptions struct {
	// Root is the project directory.
	Root string
	// PythonOverride pins the interpreter; empty means discover on PATH.
	PythonOverride string
	// VenvDir is the environment directory (relative to Root unless absolute).
	VenvDir string
	// Requirements is the manifest path (relative to Root unless absolute).
	Requirements string
	// Force reinstalls dependencies even when the manifest hash is unchanged.
	Force bool
	// Stdout and Stderr receive the external commands' streamed output.
	Stdout io.Writer
	Stderr io.Writer
	// Log receives step-by-step diagnostics.
	Log *steplog.Logger
}

// BootstrapSummary describes what a successful setup did.
type BootstrapSummary struct {
	// PythonPath is the interpreter that built (or owns) the environment.
	PythonPath string
	// PythonVersion is the interpreter's reported version.
	PythonVersion string
	// VenvCreated is true when this run created the environment.
	VenvCreated bool
	// InstallSkipped is true when the manifest hash matched the recorded
	// state and the install steps were skipped.
	InstallSkipped bool
}

// Bootstrap runs the setup procedure: interpreter check, idempotent venv
// creation, manifest check, pip upgrade, dependency install, state record.
// The first failing step aborts the rest and is returned as the error
// (ErrPythonNotFound, ErrManifestNotFound, or *StepError).
func Bootstrap(ctx context.Context, opts BootstrapOptions) (*BootstrapSummary, error) {
	logger := opts.Log
	if logger == nil {
		logger = steplog.New(io.Discard, false)
	}

	summary := &BootstrapSummary{}

	// Step 1: the interpreter must be resolvable before anything else.
	logger.Debug("resolving python interpreter", "override", opts.PythonOverride)
	interp, err := Find(opts.PythonOverride)
	if err != nil {
		logger.Error("python interpreter not found on PATH")
		return nil, err
	}
	version, err := interp.Version(ctx)
	if err != nil {
		logger.Error("interpreter did not report a version", "path", interp.Path, "err", err)
		return nil, &StepError{Step: StepCheckInterpreter, Result: NewErrorResult(1, err)}
	}
	summary.PythonPath = interp.Path
	summary.PythonVersion = version
	logger.Info("found python", "path", interp.Path, "version", version)

	// Step 2: create the environment only when absent.
	venv := NewVenv(opts.Root, opts.VenvDir)
	if venv.Exists() {
		logger.Info("virtual environment already exists", "dir", venv.Path())
	} else {
		logger.Info("creating virtual environment", "dir", venv.Path())
		if res := venv.Create(ctx, interp, opts.Stdout, opts.Stderr); !res.Success() {
			logger.Error("virtual environment creation failed", "exit_code", res.ExitCode)
			return nil, &StepError{Step: StepCreateVenv, Result: res}
		}
		summary.VenvCreated = true
	}

	// Step 3: the manifest must exist before any install attempt.
	manifest := resolvePath(opts.Root, opts.Requirements)
	if err := CheckManifest(manifest); err != nil {
		logger.Error("requirements manifest not found", "path", manifest)
		return nil, err
	}

	// Unchanged manifest: nothing to install unless forced.
	hash, err := HashFile(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to hash manifest: %w", err)
	}
	if !opts.Force && !summary.VenvCreated {
		if st, err := LoadState(opts.Root); err == nil && st != nil && st.RequirementsSHA256 == hash {
			logger.Info("dependencies up to date, skipping install", "manifest", manifest)
			summary.InstallSkipped = true
			return summary, nil
		}
	}

	installer := NewInstaller(venv, opts.Stdout, opts.Stderr)

	// Step 4: upgrade the package installer.
	logger.Info("upgrading pip")
	if res := installer.UpgradePip(ctx); !res.Success() {
		logger.Error("pip upgrade failed", "exit_code", res.ExitCode)
		return nil, &StepError{Step: StepUpgradePip, Result: res}
	}

	// Step 5: install the manifest.
	logger.Info("installing dependencies", "manifest", manifest)
	if res := installer.InstallRequirements(ctx, manifest); !res.Success() {
		logger.Error("dependency install failed", "exit_code", res.ExitCode)
		return nil, &StepError{Step: StepInstall, Result: res}
	}

	// Record the installed manifest so an unchanged one can be skipped later.
	st := &State{
		PythonVersion:      version,
		RequirementsSHA256: hash,
		UpdatedAt:          time.Now().UTC(),
	}
	if err := SaveState(opts.Root, st); err != nil {
		// The environment is fully usable; a state write failure only costs
		// the skip optimization next time.
		logger.Warn("failed to record setup state", "err", err)
	}

	logger.Info("setup complete", "venv", venv.Path())
	return summary, nil
}

func resolvePath(root, path string) string {
	if path == "" {
		return root
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(root, path)
	}
	return path
}
