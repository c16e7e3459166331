package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/consolidate/internal/notebook"
	"github.com/bethropolis/consolidate/internal/version"
)

// NewConvertCommand creates the ipynb2py command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipynb2py <input.ipynb> [output.py]",
		Short: "Convert a Jupyter notebook into a Python script",
		Long: `Convert a Jupyter notebook into a Python script. Code cells are copied as is,
markdown cells are turned into comments and other cells are dropped.

When output.py is omitted the script is written next to the notebook with the
extension replaced by .py.`,
		Args:         cobra.RangeArgs(1, 2),
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := ""
			if len(args) > 1 {
				outPath = args[1]
			}

			written, err := notebook.ConvertFile(args[0], outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully converted %s to %s\n", args[0], written)
			return nil
		},
	}

	cmd.AddCommand(NewVersionCommand("ipynb2py"))
	return cmd
}
