// SPDX-License-Identifier: MPL-2.0

package steplog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Info("creating virtual environment", "dir", ".venv")

	if !strings.Contains(buf.String(), "creating virtual environment") {
		t.Errorf("console output missing message: %q", buf.String())
	}
	if l.FileAttached() {
		t.Error("no file should be attached by default")
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var quiet, loud bytes.Buffer

	New(&quiet, false).Debug("hidden")
	New(&loud, true).Debug("shown")

	if strings.Contains(quiet.String(), "hidden") {
		t.Error("debug line should be suppressed without verbose")
	}
	if !strings.Contains(loud.String(), "shown") {
		t.Error("debug line should appear with verbose")
	}
}

func TestAttachFile_MirrorsLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	path := filepath.Join(t.TempDir(), "setup.log")
	if err := l.AttachFile(path); err != nil {
		t.Fatalf("AttachFile() error = %v", err)
	}

	l.Info("upgrading pip")
	l.Error("install failed", "exit_code", 1)

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "upgrading pip") {
		t.Errorf("log file missing info line: %q", content)
	}
	if !strings.Contains(content, "install failed") {
		t.Errorf("log file missing error line: %q", content)
	}
}

func TestAttachFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.log")

	for i := 0; i < 2; i++ {
		l := New(&bytes.Buffer{}, false)
		if err := l.AttachFile(path); err != nil {
			t.Fatalf("AttachFile() error = %v", err)
		}
		l.Info("setup run")
		if err := l.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if got := strings.Count(string(data), "setup run"); got != 2 {
		t.Errorf("log file has %d entries, want 2 (append-only)", got)
	}
}

func TestAttachFile_BadPath(t *testing.T) {
	l := New(&bytes.Buffer{}, false)
	if err := l.AttachFile(filepath.Join(t.TempDir(), "missing", "setup.log")); err == nil {
		t.Error("expected error for unwritable log path")
	}
}

func TestClose_WithoutFile(t *testing.T) {
	if err := New(&bytes.Buffer{}, false).Close(); err != nil {
		t.Errorf("Close() without file = %v, want nil", err)
	}
}
