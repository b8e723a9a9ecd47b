package env

import (
	"os"
	"path/filepath"
)

// TargetDir resolves cargo's output root for a crate rooted at root,
// in cargo's own precedence order: an explicit override, then the
// CARGO_TARGET_DIR environment variable, then root/target. A relative
// CARGO_TARGET_DIR is taken relative to root, the directory cargo is
// invoked from.
func TargetDir(root, override string) string {
	if override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(root, override)
	}
	if dir := os.Getenv("CARGO_TARGET_DIR"); dir != "" {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(root, dir)
	}
	return filepath.Join(root, "target")
}
