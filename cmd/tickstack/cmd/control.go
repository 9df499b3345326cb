package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/tickstack/internal/service/client"
)

var (
	// clientOptions collects the flags shared by next and status.
	clientOptions client.Options

	// nextCmd skips the current step of a running routine.
	nextCmd = &cobra.Command{
		Use:   "next",
		Short: "Skip the current step of the running routine.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Next(ctx, controlOptions(cmd))
		},
	}

	// statusCmd prints the running routine.
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the running routine.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Status(ctx, controlOptions(cmd))
		},
	}
)

func controlOptions(cmd *cobra.Command) *client.Options {
	options := clientOptions
	options.ConfigPath = configPath
	options.Out = cmd.OutOrStdout()

	return &options
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(nextCmd, statusCmd)

	for _, c := range []*cobra.Command{nextCmd, statusCmd} {
		c.Flags().StringVarP(&clientOptions.ServerAddress, "address", "a", "", "control endpoint address, overrides control_addr")
		c.Flags().BoolVar(&clientOptions.JSON, "json", false, "print the raw status document as JSON")
	}

	statusCmd.Flags().BoolVarP(&clientOptions.Watch, "watch", "w", false, "keep printing the status until the routine ends")
	statusCmd.Flags().DurationVar(&clientOptions.Interval, "interval", 0, "polling period of --watch (default 1s)")
}
