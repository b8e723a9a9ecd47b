// Package manifest reads the subset of Cargo.toml a plugin build needs.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// FileName is the crate manifest name cargo looks for.
const FileName = "Cargo.toml"

// Manifest holds the crate metadata relevant to building and installing
// a plugin library. Fields cargo defines but the build never consults are
// left unparsed.
type Manifest struct {
	Package Package `toml:"package"`
	Lib     Lib     `toml:"lib"`
}

type Package struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	RustVersion string `toml:"rust-version"`
}

type Lib struct {
	Name      string   `toml:"name"`
	CrateType []string `toml:"crate-type"`
}

// Load reads the manifest of the crate rooted at dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crate manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: missing [package] name", path)
	}
	return &m, nil
}

// LibName returns the library target name: the [lib] name when set,
// otherwise the package name with dashes mapped to underscores, the same
// normalization cargo applies when naming the output file.
func (m *Manifest) LibName() string {
	if m.Lib.Name != "" {
		return m.Lib.Name
	}
	return strings.ReplaceAll(m.Package.Name, "-", "_")
}

// IsCdylib reports whether the crate declares a cdylib target, the crate
// type a plugin host can dlopen.
func (m *Manifest) IsCdylib() bool {
	for _, t := range m.Lib.CrateType {
		if t == "cdylib" {
			return true
		}
	}
	return false
}
