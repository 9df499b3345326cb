package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides log_level from the configuration file.
	logLevel string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "tickstack",
		Short: "Voice-guided workout and stretching timer.",
		Long: `TickStack runs routines of timed steps: countdowns, stopwatches and spoken phrases.

Each step is announced with the system speech synthesizer while the terminal shows
the current phrase, the remaining or elapsed time and the overall progress.
A running routine can be advanced from another terminal or machine with "tickstack next".`,
		SilenceUsage:      true,
		PersistentPreRunE: applyLogLevel,
	}
)

// Execute runs the tickstack CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup persistent flags shared by every subcommand.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// applyLogLevel sets the log level from the flag or, failing that, the settings file.
func applyLogLevel(_ *cobra.Command, _ []string) error {
	level := logLevel
	if level == "" {
		// A broken settings file is reported by the command itself.
		if settings, err := config.Load(configPath); err == nil {
			level = settings.LogLevel
		}
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	logger.SetLevel(parsed)

	return nil
}
