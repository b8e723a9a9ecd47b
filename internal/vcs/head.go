// Copyright 2026 The nvbuild Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vcs reports version-control state for build diagnostics.
package vcs

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Info identifies the commit a build was produced from.
type Info struct {
	Commit string // full hash
	Branch string // short branch name, empty when HEAD is detached
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

// Head resolves the repository containing dir, walking up the way git
// itself does, and returns its HEAD. Crates that are not under version
// control report an error; callers decide whether that matters.
func Head(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	info := Info{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, nil
}
