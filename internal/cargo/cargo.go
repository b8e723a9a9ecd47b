// Package cargo wraps the cargo build/clean workflow.
package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/execabs"
)

// Mode selects the cargo build profile. The zero value is Release, the
// profile a plugin install normally wants.
type Mode int

const (
	Release Mode = iota
	Debug
)

// String returns the profile name as cargo spells it.
func (m Mode) String() string {
	if m == Debug {
		return "debug"
	}
	return "release"
}

// Subdir returns the directory under the target root that cargo writes
// this profile's output to.
func (m Mode) Subdir() string { return m.String() }

// Cargo drives cargo invocations for a single crate.
type Cargo struct {
	bin string
	dir string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New returns a Cargo rooted at dir. Subprocess streams default to the
// calling process's own, so compiler progress and prompts pass through
// untouched.
func New(dir string) *Cargo {
	return &Cargo{
		bin:    "cargo",
		dir:    dir,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Bin overrides the cargo executable. An empty path keeps the default.
func (c *Cargo) Bin(path string) {
	if path != "" {
		c.bin = path
	}
}

// Stdout redirects the subprocess standard output.
func (c *Cargo) Stdout(w io.Writer) { c.stdout = w }

// Stderr redirects the subprocess standard error.
func (c *Cargo) Stderr(w io.Writer) { c.stderr = w }

// Quiet discards subprocess output instead of streaming it.
func (c *Cargo) Quiet() {
	c.stdout = io.Discard
	c.stderr = io.Discard
}

// Build runs "cargo build" for the given mode and blocks until it exits.
// Extra args are appended at the end.
func (c *Cargo) Build(ctx context.Context, mode Mode, args ...string) error {
	buildArgs := []string{"build"}
	if mode == Release {
		buildArgs = append(buildArgs, "--release")
	}
	buildArgs = append(buildArgs, args...)
	return c.run(ctx, buildArgs)
}

// Clean runs "cargo clean" with optional extra arguments.
func (c *Cargo) Clean(ctx context.Context, args ...string) error {
	return c.run(ctx, append([]string{"clean"}, args...))
}

func (c *Cargo) run(ctx context.Context, args []string) error {
	cmd := execabs.CommandContext(ctx, c.bin, args...)
	cmd.Dir = c.dir
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cargo %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// ExitCode unwraps the subprocess exit code carried by err. It reports
// false when err did not come from a process that ran and exited, such as
// a missing executable.
func ExitCode(err error) (int, bool) {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), true
	}
	return 0, false
}
