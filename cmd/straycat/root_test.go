// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"straycat-cli/internal/config"
	"straycat-cli/internal/launcher"
	"straycat-cli/internal/pyenv"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "first wins", values: []string{"a", "b"}, want: "a"},
		{name: "skips empty", values: []string{"", "b"}, want: "b"},
		{name: "all empty", values: []string{"", ""}, want: ""},
		{name: "no values", values: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestGetVersionString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("dev version string = %q", got)
	}

	Version = "1.2.3"
	if got := getVersionString(); got == "dev (built from source)" {
		t.Error("released version should include commit and date")
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	e := &ExitError{Code: 3, Err: inner}
	if e.Error() != "boom" {
		t.Errorf("Error() = %q", e.Error())
	}
	if !errors.Is(e, inner) {
		t.Error("ExitError must unwrap to the inner error")
	}

	bare := &ExitError{Code: 5}
	if bare.Error() != "exit status 5" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestSetupFailure_ExitCodes(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "python missing", err: pyenv.ErrPythonNotFound, wantCode: 1},
		{name: "manifest missing", err: pyenv.ErrManifestNotFound, wantCode: 1},
		{
			name: "pip failure surfaces exit code",
			err: &pyenv.StepError{
				Step:   pyenv.StepInstall,
				Result: pyenv.NewExitCodeResult(2),
			},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := setupFailure(tt.err)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("setupFailure() = %v, want *ExitError", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
			if !errors.Is(err, tt.err) {
				t.Error("original error must stay in the chain")
			}
		})
	}
}

func TestFinishLaunch(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	if err := finishLaunch(pyenv.NewSuccessResult()); err != nil {
		t.Errorf("success result should return nil, got %v", err)
	}

	err := finishLaunch(pyenv.NewErrorResult(1, pyenv.ErrVenvNotFound))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("finishLaunch() = %v, want *ExitError", err)
	}
	if !errors.Is(err, pyenv.ErrVenvNotFound) {
		t.Error("venv-not-found must stay in the chain")
	}

	err = finishLaunch(pyenv.NewErrorResult(1, launcher.ErrEntrypointNotFound))
	if !errors.As(err, &exitErr) {
		t.Fatalf("finishLaunch() = %v, want *ExitError", err)
	}

	err = finishLaunch(pyenv.NewExitCodeResult(7))
	if !errors.As(err, &exitErr) || exitErr.Code != 7 {
		t.Errorf("child exit code must pass through, got %v", err)
	}
}
