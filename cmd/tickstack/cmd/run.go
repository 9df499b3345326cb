package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/tickstack/internal/service/runner"
)

var (
	// runOptions collects the flags of the run command.
	runOptions runner.Options

	// runCmd runs one routine in the foreground.
	runCmd = &cobra.Command{
		Use:   "run [routine]",
		Short: "Run a routine.",
		Long: `Runs a routine by slug or title, or from a YAML file with --file.

Press space, n or enter to skip the current step, q to stop.
While running, the routine listens on the control address for "tickstack next"
and "tickstack status" from other terminals.`,
		Example: `  tickstack run monday-workout
  tickstack run "Short Stretching" --no-speech
  tickstack run --file ./plank.yaml --listen 127.0.0.1:47601`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signalContext()
			defer stop()

			options := runOptions
			options.ConfigPath = configPath

			if len(args) > 0 {
				options.Routine = args[0]
			}

			return runner.Run(ctx, &options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOptions.File, "file", "f", "", "run the routine defined in this YAML file")
	runCmd.Flags().StringVarP(&runOptions.ListenAddress, "listen", "l", "", "control endpoint address, overrides control_addr")
	runCmd.Flags().BoolVar(&runOptions.NoTUI, "no-tui", false, "print progress as log lines instead of the terminal UI")
	runCmd.Flags().BoolVar(&runOptions.NoSpeech, "no-speech", false, "show phrases without speaking them")
	runCmd.Flags().BoolVar(&runOptions.NoJournal, "no-journal", false, "do not record the run in the journal")
}
