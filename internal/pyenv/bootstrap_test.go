// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"straycat-cli/internal/testutil"
)

func bootstrapOpts(t *testing.T, root string, pipExit int) BootstrapOptions {
	t.Helper()
	return BootstrapOptions{
		Root:           root,
		PythonOverride: writeStubPython(t, t.TempDir(), pipExit),
		VenvDir:        ".venv",
		Requirements:   "requirements.txt",
	}
}

func TestBootstrap_FreshProject(t *testing.T) {
	skipWithoutPOSIXShell(t)

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "requirements.txt"), "streamlit\n")

	var stdout bytes.Buffer
	opts := bootstrapOpts(t, root, 0)
	opts.Stdout = &stdout

	summary, err := Bootstrap(context.Background(), opts)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if !summary.VenvCreated {
		t.Error("VenvCreated = false on a fresh project")
	}
	if summary.InstallSkipped {
		t.Error("InstallSkipped = true on a fresh project")
	}
	if summary.PythonVersion != "3.12.0" {
		t.Errorf("PythonVersion = %q", summary.PythonVersion)
	}
	if _, err := os.Stat(filepath.Join(root, ".venv")); err != nil {
		t.Errorf("venv directory missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, StateFileName)); err != nil {
		t.Errorf("state file missing after successful setup: %v", err)
	}
	if !strings.Contains(stdout.String(), "install -r") {
		t.Errorf("dependency install never ran: %q", stdout.String())
	}
}

func TestBootstrap_SecondRunSkipsInstall(t *testing.T) {
	skipWithoutPOSIXShell(t)

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "requirements.txt"), "streamlit\n")

	opts := bootstrapOpts(t, root, 0)
	if _, err := Bootstrap(context.Background(), opts); err != nil {
		t.Fatalf("first Bootstrap() error = %v", err)
	}

	var stdout bytes.Buffer
	opts.Stdout = &stdout
	summary, err := Bootstrap(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Bootstrap() error = %v", err)
	}
	if summary.VenvCreated {
		t.Error("VenvCreated = true on the second run")
	}
	if !summary.InstallSkipped {
		t.Error("InstallSkipped = false with an unchanged manifest")
	}
	if strings.Contains(stdout.String(), "install") {
		t.Errorf("pip ran despite an unchanged manifest: %q", stdout.String())
	}
}

func TestBootstrap_ChangedManifestReinstalls(t *testing.T) {
	skipWithoutPOSIXShell(t)

	root := t.TempDir()
	manifest := filepath.Join(root, "requirements.txt")
	testutil.MustWriteFile(t, manifest, "streamlit==1.39.0\n")

	opts := bootstrapOpts(t, root, 0)
	if _, err := Bootstrap(context.Background(), opts); err != nil {
		t.Fatalf("first Bootstrap() error = %v", err)
	}

	testutil.MustWriteFile(t, manifest, "streamlit==1.40.0\n")

	summary, err := Bootstrap(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Bootstrap() error = %v", err)
	}
	if summary.InstallSkipped {
		t.Error("InstallSkipped = true after the manifest changed")
	}
}

func TestBootstrap_ForceReinstalls(t *testing.T) {
	skipWithoutPOSIXShell(t)

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "requirements.txt"), "streamlit\n")

	opts := bootstrapOpts(t, root, 0)
	if _, err := Bootstrap(context.Background(), opts); err != nil {
		t.Fatalf("first Bootstrap() error = %v", err)
	}

	var stdout bytes.Buffer
	opts.Force = true
	opts.Stdout = &stdout
	summary, err := Bootstrap(context.Background(), opts)
	if err != nil {
		t.Fatalf("forced Bootstrap() error = %v", err)
	}
	if summary.InstallSkipped {
		t.Error("InstallSkipped = true under --force")
	}
	if !strings.Contains(stdout.String(), "install -r") {
		t.Errorf("forced run did not reinstall: %q", stdout.String())
	}
}

func TestBootstrap_MissingManifestHaltsBeforeInstall(t *testing.T) {
	skipWithoutPOSIXShell(t)

	root := t.TempDir()
	var stdout bytes.Buffer
	opts := bootstrapOpts(t, root, 0)
	opts.Stdout = &stdout

	_, err := Bootstrap(context.Background(), opts)
	if !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("Bootstrap() error = %v, want ErrManifestNotFound", err)
	}
	if strings.Contains(stdout.String(), "pip") {
		t.Errorf("pip ran without a manifest: %q", stdout.String())
	}
	// The environment itself is still created; only the install is blocked.
	if _, statErr := os.Stat(filepath.Join(root, ".venv")); statErr != nil {
		t.Errorf("venv should exist even when the manifest is missing: %v", statErr)
	}
}

func TestBootstrap_PipFailureAbortsRemainingSteps(t *testing.T) {
	skipWithoutPOSIXShell(t)

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "requirements.txt"), "streamlit\n")

	var stdout bytes.Buffer
	opts := bootstrapOpts(t, root, 1)
	opts.Stdout = &stdout

	_, err := Bootstrap(context.Background(), opts)

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Bootstrap() error = %v, want *StepError", err)
	}
	if stepErr.Step != StepUpgradePip {
		t.Errorf("Step = %q, want %q", stepErr.Step, StepUpgradePip)
	}
	if stepErr.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", stepErr.ExitCode())
	}
	if strings.Contains(stdout.String(), "install -r") {
		t.Errorf("install ran after the pip upgrade failed: %q", stdout.String())
	}
	if _, statErr := os.Stat(filepath.Join(root, StateFileName)); statErr == nil {
		t.Error("state file must not be written after a failed setup")
	}
}

func TestBootstrap_PythonMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Bootstrap(context.Background(), BootstrapOptions{
		Root:         t.TempDir(),
		VenvDir:      ".venv",
		Requirements: "requirements.txt",
	})
	if !errors.Is(err, ErrPythonNotFound) {
		t.Errorf("Bootstrap() error = %v, want ErrPythonNotFound", err)
	}
}
