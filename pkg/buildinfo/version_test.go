package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.Contains(tmpl, Version) {
		t.Errorf("template %q missing version %q", tmpl, Version)
	}
	if !strings.Contains(tmpl, "{{.Name}}") {
		t.Errorf("template %q missing cobra name placeholder", tmpl)
	}
}

func TestShortCommit(t *testing.T) {
	orig := Commit
	defer func() { Commit = orig }()

	Commit = "0123456789abcdef0123456789abcdef01234567"
	if got := shortCommit(); got != "0123456789ab" {
		t.Errorf("shortCommit() = %q, want 12-character prefix", got)
	}

	Commit = "none"
	if got := shortCommit(); got != "none" {
		t.Errorf("shortCommit() = %q, want %q unchanged", got, "none")
	}
}
