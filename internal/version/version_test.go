package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	t.Parallel()

	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q want abc", got)
	}
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q want 0123456789ab", got)
	}
}

func TestResolveAlwaysHasVersion(t *testing.T) {
	info := Resolve()
	if info.Version == "" {
		t.Fatalf("empty version")
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Fatalf("go version: %q", info.GoVersion)
	}
	if s := String(); !strings.HasPrefix(s, info.Version) {
		t.Fatalf("String() = %q, want prefix %q", s, info.Version)
	}
}
