package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/tickstack/internal/service/catalog"
)

// listCmd prints the available routines.
var listCmd = &cobra.Command{
	Use:     "list [routine]",
	Aliases: []string{"ls"},
	Short:   "List routines or show the steps of one.",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options := &catalog.Options{
			ConfigPath: configPath,
			Out:        cmd.OutOrStdout(),
		}

		if len(args) > 0 {
			options.Routine = args[0]
		}

		return catalog.Run(cmd.Context(), options)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(listCmd)
}
