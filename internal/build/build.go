package build

import (
	"context"
	"runtime"

	"github.com/qiniu/x/log"

	"github.com/pjhades/nvbuild/internal/cargo"
	"github.com/pjhades/nvbuild/internal/env"
	"github.com/pjhades/nvbuild/internal/install"
	"github.com/pjhades/nvbuild/internal/manifest"
	"github.com/pjhades/nvbuild/internal/platform"
	"github.com/pjhades/nvbuild/internal/vcs"
)

// Options configures a Builder.
type Options struct {
	Dir       string     // crate root, "." when empty
	Mode      cargo.Mode // build profile, Release when zero
	TargetDir string     // cargo output root override
	CargoBin  string     // cargo executable override
	Quiet     bool       // discard toolchain output
	GOOS      string     // host OS, runtime.GOOS when empty
}

// Builder runs the build-and-install and clean-and-remove passes for one
// plugin crate.
type Builder struct {
	dir       string
	mode      cargo.Mode
	man       *manifest.Manifest
	paths     install.Paths
	cargo     *cargo.Cargo
	extraArgs []string // forwarded to every cargo invocation
}

// New resolves the host platform and the crate manifest for opts. An
// unsupported host or an unreadable Cargo.toml fails here, before any
// toolchain runs.
func New(opts Options) (*Builder, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	plat, err := platform.FromGOOS(goos)
	if err != nil {
		return nil, err
	}
	man, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	art := plat.Artifact(man.LibName())

	c := cargo.New(dir)
	c.Bin(opts.CargoBin)
	if opts.Quiet {
		c.Quiet()
	}
	// An explicit target directory has to reach cargo too; a
	// CARGO_TARGET_DIR from the environment cargo reads on its own.
	var extra []string
	if opts.TargetDir != "" {
		extra = []string{"--target-dir", opts.TargetDir}
	}
	return &Builder{
		dir:       dir,
		mode:      opts.Mode,
		man:       man,
		paths:     install.Layout(dir, env.TargetDir(dir, opts.TargetDir), opts.Mode.Subdir(), art),
		cargo:     c,
		extraArgs: extra,
	}, nil
}

// InstalledPath returns where Build places the plugin library.
func (b *Builder) InstalledPath() string { return b.paths.Dest }

// Build compiles the crate and moves the shared library into place.
// A failing compile aborts before anything is installed; the cargo exit
// status rides on the returned error.
func (b *Builder) Build(ctx context.Context) error {
	b.logStamp()
	b.checkToolchain(ctx)
	if !b.man.IsCdylib() {
		log.Warnf("%s does not declare a cdylib crate-type, the host may not load %s",
			manifest.FileName, b.paths.Dest)
	}

	if err := b.cargo.Build(ctx, b.mode, b.extraArgs...); err != nil {
		return err
	}
	return install.Install(b.paths)
}

// Clean removes build state: cargo's own target directory, then the
// installed library. A tree that is already clean is not an error.
func (b *Builder) Clean(ctx context.Context) error {
	if err := b.cargo.Clean(ctx, b.extraArgs...); err != nil {
		return err
	}
	return install.Remove(b.paths)
}

// logStamp names the crate and commit being built. A crate outside
// version control builds without a stamp.
func (b *Builder) logStamp() {
	log.Infof("building %s %s (%s)", b.man.Package.Name, b.man.Package.Version, b.mode)
	info, err := vcs.Head(b.dir)
	if err != nil {
		log.Debugf("no VCS stamp: %v", err)
		return
	}
	if info.Branch != "" {
		log.Infof("source at %s (%s)", info.Short(), info.Branch)
		return
	}
	log.Infof("source at %s (detached)", info.Short())
}

// checkToolchain warns when cargo predates the crate's declared
// rust-version. The build proceeds either way; cargo enforces the
// requirement itself.
func (b *Builder) checkToolchain(ctx context.Context) {
	required := b.man.Package.RustVersion
	if required == "" {
		return
	}
	v, err := b.cargo.Version(ctx)
	if err != nil {
		log.Debugf("cargo version unavailable: %v", err)
		return
	}
	if !cargo.Supports(v, required) {
		log.Warnf("cargo %s is older than rust-version %s in %s", v, required, manifest.FileName)
	}
}
