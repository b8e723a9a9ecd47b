package env

import (
	"path/filepath"
	"testing"
)

func TestTargetDir_Default(t *testing.T) {
	t.Setenv("CARGO_TARGET_DIR", "")

	root := t.TempDir()
	want := filepath.Join(root, "target")
	if got := TargetDir(root, ""); got != want {
		t.Errorf("TargetDir() = %q, want %q", got, want)
	}
}

func TestTargetDir_Env(t *testing.T) {
	root := t.TempDir()

	t.Run("absolute", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "out")
		t.Setenv("CARGO_TARGET_DIR", abs)
		if got := TargetDir(root, ""); got != abs {
			t.Errorf("TargetDir() = %q, want %q", got, abs)
		}
	})

	t.Run("relative", func(t *testing.T) {
		// cargo resolves a relative CARGO_TARGET_DIR against its
		// working directory, which is the crate root here.
		t.Setenv("CARGO_TARGET_DIR", "build-out")
		want := filepath.Join(root, "build-out")
		if got := TargetDir(root, ""); got != want {
			t.Errorf("TargetDir() = %q, want %q", got, want)
		}
	})
}

func TestTargetDir_OverrideWins(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CARGO_TARGET_DIR", filepath.Join(t.TempDir(), "ignored"))

	abs := filepath.Join(t.TempDir(), "chosen")
	if got := TargetDir(root, abs); got != abs {
		t.Errorf("TargetDir() = %q, want %q", got, abs)
	}

	want := filepath.Join(root, "rel-out")
	if got := TargetDir(root, "rel-out"); got != want {
		t.Errorf("TargetDir() = %q, want %q", got, want)
	}
}
