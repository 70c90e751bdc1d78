// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet_KnownIds(t *testing.T) {
	ids := []Id{
		PythonNotFoundId,
		ManifestNotFoundId,
		VenvNotFoundId,
		VenvCreateFailedId,
		PipUpgradeFailedId,
		InstallFailedId,
		LaunchFailedId,
		ConfigLoadFailedId,
		DataDirNotFoundId,
		HookFailedId,
	}

	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d, want %d", id, iss.Id(), id)
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty markdown message", id)
		}
	}
}

func TestGet_UnknownIdReturnsNil(t *testing.T) {
	if iss := Get(Id(9999)); iss != nil {
		t.Errorf("Get(9999) = %v, want nil", iss)
	}
}

func TestValues_CoversRegistry(t *testing.T) {
	if len(Values()) != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", len(Values()), len(issues))
	}
}

func TestVenvNotFound_MentionsSetup(t *testing.T) {
	iss := Get(VenvNotFoundId)
	if !strings.Contains(string(iss.MarkdownMsg()), "run setup first") {
		t.Error("VenvNotFound message should tell the user to run setup first")
	}
}

func TestRender_UsesRenderer(t *testing.T) {
	original := render
	defer func() { render = original }()

	var gotInput string
	render = func(in string, stylePath string) (string, error) {
		gotInput = in
		return "rendered", nil
	}

	out, err := Get(PythonNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q, want %q", out, "rendered")
	}
	if !strings.Contains(gotInput, "Python") {
		t.Errorf("renderer input missing issue body: %q", gotInput)
	}
	// PythonNotFound carries an external link, so the see-also section renders.
	if !strings.Contains(gotInput, "See also") {
		t.Errorf("renderer input missing see-also section: %q", gotInput)
	}
}
