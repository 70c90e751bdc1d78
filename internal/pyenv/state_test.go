// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"straycat-cli/internal/testutil"
)

func TestState_RoundTrip(t *testing.T) {
	root := t.TempDir()
	want := &State{
		PythonVersion:      "3.12.0",
		RequirementsSHA256: "deadbeef",
		UpdatedAt:          time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC),
	}

	if err := SaveState(root, want); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	got, err := LoadState(root)
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if got == nil {
		t.Fatal("LoadState() returned nil for an existing state file")
	}
	if got.PythonVersion != want.PythonVersion {
		t.Errorf("PythonVersion = %q, want %q", got.PythonVersion, want.PythonVersion)
	}
	if got.RequirementsSHA256 != want.RequirementsSHA256 {
		t.Errorf("RequirementsSHA256 = %q, want %q", got.RequirementsSHA256, want.RequirementsSHA256)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, want.UpdatedAt)
	}
}

func TestLoadState_Missing(t *testing.T) {
	st, err := LoadState(t.TempDir())
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if st != nil {
		t.Errorf("LoadState() = %+v, want nil for a missing file", st)
	}
}

func TestLoadState_Corrupt(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, StateFileName), "not = [valid toml")

	if _, err := LoadState(root); err == nil {
		t.Error("LoadState() should fail on a corrupt state file")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	testutil.MustWriteFile(t, path, "streamlit==1.39.0\n")

	first, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	second, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if first != second {
		t.Errorf("hash is not stable: %q vs %q", first, second)
	}

	testutil.MustWriteFile(t, path, "streamlit==1.40.0\n")
	changed, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if changed == first {
		t.Error("hash did not change with the file contents")
	}
}

func TestHashFile_Missing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent.txt")); !os.IsNotExist(err) {
		t.Errorf("HashFile() error = %v, want not-exist", err)
	}
}
