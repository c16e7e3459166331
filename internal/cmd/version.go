package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/consolidate/internal/version"
)

// NewVersionCommand creates the version subcommand for program
func NewVersionCommand(program string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display the version of %s", program),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version.Get(program)
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print the version number only")
	return cmd
}
