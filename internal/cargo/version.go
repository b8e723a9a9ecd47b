package cargo

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/sys/execabs"
)

// Version reports the version of the cargo executable, e.g. "1.82.0".
func (c *Cargo) Version(ctx context.Context) (string, error) {
	cmd := execabs.CommandContext(ctx, c.bin, "--version")
	cmd.Dir = c.dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("cargo --version: %w", err)
	}
	return parseVersion(string(out))
}

// parseVersion extracts the version number from output like
// "cargo 1.82.0 (f6e511eec 2024-10-15)".
func parseVersion(out string) (string, error) {
	fields := strings.Fields(out)
	if len(fields) < 2 || fields[0] != "cargo" {
		return "", fmt.Errorf("unrecognized cargo version output %q", strings.TrimSpace(out))
	}
	return fields[1], nil
}

// Supports reports whether toolchain version v satisfies the minimum
// required version. Both are cargo-style versions without the leading "v";
// required may omit the patch component, as rust-version usually does.
// Versions that do not parse never block a build.
func Supports(v, required string) bool {
	cv := "v" + strings.TrimPrefix(v, "v")
	req := "v" + strings.TrimPrefix(required, "v")
	if !semver.IsValid(cv) || !semver.IsValid(req) {
		return true
	}
	return semver.Compare(cv, req) >= 0
}
