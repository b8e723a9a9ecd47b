package cargo

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeCargo writes an executable shell script to stand in for cargo and
// returns its path. body runs with the invocation arguments in "$@".
func fakeCargo(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "cargo")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Release, "release"},
		{Debug, "debug"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
		if got := tt.mode.Subdir(); got != tt.want {
			t.Errorf("Mode(%d).Subdir() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	script := `printf '%s' "$*" > ` + argsFile + "\n"

	tests := []struct {
		name string
		mode Mode
		want string
	}{
		{"release", Release, "build --release"},
		{"debug", Debug, "build"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(t.TempDir())
			c.Bin(fakeCargo(t, script))
			if err := c.Build(context.Background(), tt.mode); err != nil {
				t.Fatalf("Build: %v", err)
			}
			got, err := os.ReadFile(argsFile)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("cargo argv = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanArgs(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	c := New(t.TempDir())
	c.Bin(fakeCargo(t, `printf '%s' "$*" > `+argsFile+"\n"))

	if err := c.Clean(context.Background()); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	got, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "clean" {
		t.Errorf("cargo argv = %q, want %q", got, "clean")
	}
}

func TestRunsInCrateDir(t *testing.T) {
	dir := t.TempDir()
	cwdFile := filepath.Join(t.TempDir(), "cwd")

	c := New(dir)
	c.Bin(fakeCargo(t, `pwd -P > `+cwdFile+"\n"))
	if err := c.Build(context.Background(), Release); err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := os.ReadFile(cwdFile)
	if err != nil {
		t.Fatal(err)
	}
	// Resolve symlinks on both sides; macOS tempdirs live under /var -> /private/var.
	gotDir, err := filepath.EvalSymlinks(strings.TrimSpace(string(got)))
	if err != nil {
		t.Fatal(err)
	}
	wantDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if gotDir != wantDir {
		t.Errorf("subprocess cwd = %q, want %q", gotDir, wantDir)
	}
}

func TestOutputStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New(t.TempDir())
	c.Bin(fakeCargo(t, "echo building\necho oops >&2\n"))
	c.Stdout(&out)
	c.Stderr(&errOut)

	if err := c.Build(context.Background(), Release); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "building" {
		t.Errorf("stdout = %q, want %q", got, "building")
	}
	if got := strings.TrimSpace(errOut.String()); got != "oops" {
		t.Errorf("stderr = %q, want %q", got, "oops")
	}
}

func TestExitCode(t *testing.T) {
	c := New(t.TempDir())
	c.Bin(fakeCargo(t, "exit 101\n"))

	err := c.Build(context.Background(), Release)
	if err == nil {
		t.Fatal("Build should fail when cargo exits nonzero")
	}
	code, ok := ExitCode(err)
	if !ok {
		t.Fatalf("ExitCode(%v) not recognized as a process exit", err)
	}
	if code != 101 {
		t.Errorf("exit code = %d, want 101", code)
	}
}

func TestExitCode_MissingBinary(t *testing.T) {
	c := New(t.TempDir())
	c.Bin(filepath.Join(t.TempDir(), "no-such-cargo"))

	err := c.Build(context.Background(), Release)
	if err == nil {
		t.Fatal("Build should fail when cargo is missing")
	}
	if _, ok := ExitCode(err); ok {
		t.Errorf("ExitCode(%v) = ok for a process that never ran", err)
	}
}

func TestVersion(t *testing.T) {
	c := New(t.TempDir())
	c.Bin(fakeCargo(t, "echo 'cargo 1.82.0 (f6e511eec 2024-10-15)'\n"))

	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != "1.82.0" {
		t.Errorf("Version() = %q, want %q", v, "1.82.0")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		out     string
		want    string
		wantErr bool
	}{
		{"cargo 1.82.0 (f6e511eec 2024-10-15)\n", "1.82.0", false},
		{"cargo 1.84.0-nightly (cf53cc54b 2024-10-30)\n", "1.84.0-nightly", false},
		{"cargo 1.70.0\n", "1.70.0", false},
		{"rustc 1.82.0\n", "", true},
		{"\n", "", true},
		{"cargo", "", true},
	}
	for _, tt := range tests {
		got, err := parseVersion(tt.out)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseVersion(%q) = %q, want error", tt.out, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVersion(%q): %v", tt.out, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVersion(%q) = %q, want %q", tt.out, got, tt.want)
		}
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		v, required string
		want        bool
	}{
		{"1.82.0", "1.70", true},
		{"1.70.0", "1.70", true},
		{"1.69.0", "1.70", false},
		{"1.7.0", "1.70", false},
		{"1.84.0-nightly", "1.80", true},
		// Unparseable versions never block.
		{"mystery", "1.70", true},
		{"1.82.0", "one-seventy", true},
	}
	for _, tt := range tests {
		if got := Supports(tt.v, tt.required); got != tt.want {
			t.Errorf("Supports(%q, %q) = %v, want %v", tt.v, tt.required, got, tt.want)
		}
	}
}
