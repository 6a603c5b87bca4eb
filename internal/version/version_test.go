package version

import "testing"

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringShortensCommit(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version = "1.0.0"
	Commit = "0123456789abcdef"
	if got, want := String(), "1.0.0 (0123456)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
