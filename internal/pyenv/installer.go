// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrManifestNotFound is returned when the requirements manifest is absent.
// The check runs before any install attempt so the failure names the real
// problem instead of a pip usage error.
var ErrManifestNotFound = errors.New("requirements manifest not found")

// Installer runs pip inside an existing virtual environment.
type Installer struct {
	// Venv is the target environment.
	Venv Venv
	// Stdout and Stderr receive pip's streamed output.
	Stdout io.Writer
	// Stderr receives pip's diagnostic stream.
	Stderr io.Writer
}

// NewInstaller creates an Installer for the environment.
func NewInstaller(venv Venv, stdout, stderr io.Writer) *Installer {
	return &Installer{Venv: venv, Stdout: stdout, Stderr: stderr}
}

// UpgradePip upgrades the environment's package installer to the latest
// release ('python -m pip install --upgrade pip').
func (in *Installer) UpgradePip(ctx context.Context) *Result {
	return in.pip(ctx, "install", "--upgrade", "pip")
}

// InstallRequirements installs the manifest's pinned dependencies into the
// environment. The manifest must exist; use CheckManifest first for a
// distinct missing-manifest failure.
func (in *Installer) InstallRequirements(ctx context.Context, manifest string) *Result {
	return in.pip(ctx, "install", "-r", manifest)
}

// CheckManifest verifies the manifest file exists and is a regular file.
func CheckManifest(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ErrManifestNotFound
	}
	return nil
}

// pip invokes the venv interpreter's pip module so the system Python is never
// touched, even when PATH resolution is surprising.
func (in *Installer) pip(ctx context.Context, args ...string) *Result {
	argv := append([]string{"-m", "pip"}, args...)
	return run(ctx, in.Stdout, in.Stderr, in.Venv.Environ(os.Environ()), in.Venv.Root, in.Venv.Python(), argv...)
}
