package internal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pjhades/nvbuild/internal/build"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build output and the installed library",
	Long: `Clean runs cargo clean for the crate in the current directory and
removes the installed plugin library. A tree that is already clean is
not an error.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	b, err := build.New(build.Options{
		CargoBin: cargoBin,
		Quiet:    quiet,
	})
	if err != nil {
		return err
	}
	return b.Clean(context.Background())
}
