package version_test

import (
	"testing"

	"github.com/bmin023/scoreboard/internal/version"
)

func TestBuildDateDefaultsToUnknown(t *testing.T) {
	if version.BuildDate != "unknown" {
		t.Errorf("BuildDate = %q, want %q", version.BuildDate, "unknown")
	}
}

func TestStringWithDefaultsReturnsDev(t *testing.T) {
	origVersion, origCommit := version.Version, version.Commit
	t.Cleanup(func() { version.Version, version.Commit = origVersion, origCommit })

	version.Version, version.Commit = "dev", "none"
	if got := version.String(); got != "dev" {
		t.Errorf("String() = %q, want %q", got, "dev")
	}
}

func TestStringParsesGitDescribeVersion(t *testing.T) {
	origVersion, origCommit := version.Version, version.Commit
	t.Cleanup(func() { version.Version, version.Commit = origVersion, origCommit })

	version.Version = "v1.2.3-4-gabcdef1"
	version.Commit = "abcdef1"
	want := "v1.2.3-abcdef1-4"
	if got := version.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStringOnDirtyBuildFallsBackToCommit(t *testing.T) {
	origVersion, origCommit := version.Version, version.Commit
	t.Cleanup(func() { version.Version, version.Commit = origVersion, origCommit })

	version.Version = "v1.2.3-dirty"
	version.Commit = "abcdef1234"
	want := "v1.2.3-abcdef1-0"
	if got := version.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
