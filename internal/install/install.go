// Copyright 2026 The nvbuild Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package install places built plugin libraries where the host loads them.
package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pjhades/nvbuild/internal/platform"
)

// ErrArtifactNotFound reports that the expected build output is missing
// from the target directory, usually because the build wrote somewhere
// else than the install step is looking.
var ErrArtifactNotFound = errors.New("build artifact not found")

// Paths is the resolved source and destination for one artifact.
type Paths struct {
	Source  string // where cargo left the library
	DestDir string // directory the plugin host loads from
	Dest    string // final artifact path
	Nested  bool   // DestDir exists only to hold the artifact
}

// Layout computes the artifact paths for a crate rooted at root, given
// cargo's target root and the profile subdirectory ("debug" or "release").
func Layout(root, targetDir, profile string, art platform.Artifact) Paths {
	destDir := root
	if art.Nested() {
		destDir = filepath.Join(root, art.Subdir)
	}
	return Paths{
		Source:  filepath.Join(targetDir, profile, art.Built),
		DestDir: destDir,
		Dest:    filepath.Join(destDir, art.Installed),
		Nested:  art.Nested(),
	}
}

// Install moves the built artifact into place, creating the destination
// directory if needed. An existing destination file is replaced. A missing
// source reports ErrArtifactNotFound.
//
// The artifact is moved, not copied: after a successful Install the source
// path is gone.
func Install(p Paths) error {
	if err := os.MkdirAll(p.DestDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", p.DestDir, err)
	}
	err := os.Rename(p.Source, p.Dest)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrArtifactNotFound, p.Source)
	}
	// Rename fails across filesystems, e.g. a CARGO_TARGET_DIR on
	// another mount. Fall back to copy and remove.
	if copyErr := copyFile(p.Source, p.Dest); copyErr != nil {
		return fmt.Errorf("install %s: %w", p.Dest, err)
	}
	return os.Remove(p.Source)
}

// Remove deletes the installed artifact. A nested artifact takes its
// directory with it. An artifact that is already gone is not an error.
func Remove(p Paths) error {
	if p.Nested {
		if err := os.RemoveAll(p.DestDir); err != nil {
			return fmt.Errorf("remove %s: %w", p.DestDir, err)
		}
		return nil
	}
	if err := os.Remove(p.Dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", p.Dest, err)
	}
	return nil
}

// copyFile copies src to dst, preserving the source permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
