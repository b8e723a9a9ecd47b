// Package platform maps the host operating system to the shared-library
// names a plugin build produces and installs.
package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported reports a host operating system outside the recognized set.
var ErrUnsupported = errors.New("unsupported platform")

// Platform is a recognized host operating system.
type Platform int

const (
	Linux Platform = iota
	Windows
	Darwin
)

// FromGOOS maps a GOOS value to a Platform.
func FromGOOS(goos string) (Platform, error) {
	switch goos {
	case "linux":
		return Linux, nil
	case "windows":
		return Windows, nil
	case "darwin":
		return Darwin, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnsupported, goos)
}

func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	case Darwin:
		return "darwin"
	}
	return fmt.Sprintf("platform(%d)", int(p))
}

// Artifact describes the library names for one platform. Built is the
// filename cargo emits under the target directory, Installed the filename
// the plugin host loads, and Subdir the directory, relative to the crate
// root, the installed file nests under. An empty Subdir installs the file
// at the crate root.
type Artifact struct {
	Built     string
	Installed string
	Subdir    string
}

// Nested reports whether the installed file lives in its own subdirectory.
func (a Artifact) Nested() bool { return a.Subdir != "" }

// Artifact returns the library names for a cdylib crate named lib on p.
// Linux nests the installed file under lua/; Windows and macOS install at
// the crate root, the macOS dylib under the .so name Neovim resolves.
func (p Platform) Artifact(lib string) Artifact {
	switch p {
	case Windows:
		return Artifact{Built: lib + ".dll", Installed: lib + ".dll"}
	case Darwin:
		return Artifact{Built: "lib" + lib + ".dylib", Installed: lib + ".so"}
	default:
		return Artifact{Built: "lib" + lib + ".so", Installed: lib + ".so", Subdir: "lua"}
	}
}
