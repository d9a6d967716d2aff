package version

import (
	"slices"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })
}

func TestColoredKeepsText(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.7", "nightly", "1.2"}
	for _, v := range tests {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestColoredHighlightsComponents(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	withVersion(t, "1.2.3-dev", "", "")
	got := Colored()
	if got == "1.2.3-dev" {
		t.Fatalf("expected escape sequences, got %q", got)
	}
}

func TestDetails(t *testing.T) {
	withVersion(t, "1.0.0", "", "")
	if got := Details(); len(got) != 0 {
		t.Fatalf("Details() = %v, want none", got)
	}
	withVersion(t, "1.0.0", "abc123", "2024-01-15")
	want := []string{"commit abc123", "built 2024-01-15"}
	if got := Details(); !slices.Equal(got, want) {
		t.Fatalf("Details() = %v, want %v", got, want)
	}
}
