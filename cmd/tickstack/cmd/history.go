package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/tickstack/internal/service/history"
)

var (
	// historyLimit is the number of runs printed.
	historyLimit int

	// historyCmd prints the run journal.
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recently finished runs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return history.Run(cmd.Context(), &history.Options{
				ConfigPath: configPath,
				Limit:      historyLimit,
				Out:        cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show, 0 for all")
}
