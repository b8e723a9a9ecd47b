package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pjhades/nvbuild/internal/build"
	"github.com/pjhades/nvbuild/internal/cargo"
)

var buildTargetDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the plugin and install its shared library",
	Long: `Build compiles the crate in the current directory with cargo and moves
the resulting shared library to the path Neovim loads it from. The build
profile is release unless -d is given.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildTargetDir, "target-dir", "", "Directory for cargo build output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	b, err := build.New(build.Options{
		Mode:      buildMode(),
		TargetDir: buildTargetDir,
		CargoBin:  cargoBin,
		Quiet:     quiet,
	})
	if err != nil {
		return err
	}
	if err := b.Build(ctx); err != nil {
		return err
	}
	fmt.Printf("Installed %s\n", b.InstalledPath())
	return nil
}

// buildMode maps the profile flag to a cargo build mode.
func buildMode() cargo.Mode {
	if debugBuild {
		return cargo.Debug
	}
	return cargo.Release
}
