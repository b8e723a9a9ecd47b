package internal

import (
	"os"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/pjhades/nvbuild/internal/cargo"
)

var (
	debugBuild bool
	quiet      bool
	verbose    bool
	cargoBin   string
)

var rootCmd = &cobra.Command{
	Use:   "nvbuild",
	Short: "nvbuild builds and installs Rust-based Neovim plugins",
	Long: `nvbuild wraps cargo for crates that compile to a Neovim plugin library:
it builds the crate in the current directory and moves the shared library
to the path Neovim loads it from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// A failed cargo invocation exits with cargo's own status.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	log.Error(err)
	if code, ok := cargo.ExitCode(err); ok && code > 0 {
		os.Exit(code)
	}
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugBuild, "debug-build", "d", false, "Build the debug profile instead of release")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Discard cargo output instead of streaming it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostics")
	rootCmd.PersistentFlags().StringVar(&cargoBin, "cargo", "", "Path to the cargo executable")
}
