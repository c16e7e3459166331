// Package cmd holds the cobra commands of the consolidate and ipynb2py binaries
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/consolidate/internal/app"
	"github.com/bethropolis/consolidate/internal/config"
	"github.com/bethropolis/consolidate/internal/version"
)

// NewRootCommand creates the consolidate command
func NewRootCommand() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "consolidate [input_dir] [output_file]",
		Short: "Concatenate the text files of a directory into one document",
		Long: `Consolidate walks a directory, skips everything matched by .gitignore files,
custom ignore patterns, the extension filter or the binary check, and writes
the remaining text files into a single output file with start and end markers
around each one.

input_dir defaults to the current directory and output_file to summarised.txt.
The first argument "version" runs the version command; to consolidate a
directory of that name pass it as ./version.`,
		Args:    cobra.RangeArgs(0, 2),
		Version: version.Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyArgs(args)
			cfg.Finalize()
			return app.New(cfg, os.Stderr).Run(cmd.Context())
		},
	}

	cfg.Bind(cmd.Flags())
	cmd.AddCommand(NewVersionCommand("consolidate"))

	return cmd
}
