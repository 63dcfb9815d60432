package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2025-01-01"

	if got := Template(); !strings.Contains(got, "v1.2.3") || !strings.Contains(got, "{{.Name}}") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "commit: abc123") {
		t.Errorf("String() = %q", got)
	}
	if got := Current(); got != (Info{Version: "v1.2.3", Commit: "abc123", Date: "2025-01-01"}) {
		t.Errorf("Current() = %+v", got)
	}
}
