package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/tickstack/internal/api/grpc/control"
	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/service/common"
)

// Options configures the control client commands.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides the control address from config when specified.
	ServerAddress string

	// JSON prints the raw status document instead of a summary line.
	JSON bool

	// Watch keeps printing the status until the routine ends.
	Watch bool

	// Interval is the polling period of Watch.
	Interval time.Duration

	// Out receives the command output, os.Stdout if nil.
	Out io.Writer
}

// defaultWatchInterval defines how often Watch polls the runner.
const defaultWatchInterval = 1 * time.Second

// Next asks the running routine to skip its current step.
func Next(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "next")

	client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	// Identify current user and hostname so the runner can log who skipped.
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Sending anonymous request", "error", err)
	}

	doc, err := client.Next(ctx, actor)
	if err != nil {
		return err
	}

	return printStatus(output(opts), doc, opts.JSON)
}

// Status prints the running routine, once or until it ends when opts.Watch is set.
func Status(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "status")

	client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	out := output(opts)

	// The first call must succeed, later ones may find the runner gone.
	doc, err := client.GetStatus(ctx)
	if err != nil {
		return err
	}

	if err = printStatus(out, doc, opts.JSON); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	// Setup polling timer for subsequent calls.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := summary(doc)

	// Poll loop until the routine ends or the user cancels.
	for {
		if !isRunning(doc) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		doc, err = client.GetStatus(ctx)
		if err != nil {
			// The runner exits with its routine.
			if ctx.Err() != nil || status.Code(err) == codes.Unavailable {
				logger.Info(ctx, "Routine is no longer running")
				return nil
			}

			return err
		}

		// Unchanged snapshots are skipped to keep the output readable.
		if current := summary(doc); current != last || opts.JSON {
			last = current

			if err = printStatus(out, doc, opts.JSON); err != nil {
				return err
			}
		}
	}
}

// connect dials the control endpoint from the settings.
func connect(ctx context.Context, opts *Options) (*common.Client, error) {
	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Use control address from options if provided, otherwise use config.
	address := cfg.ControlAddress
	if opts.ServerAddress != "" {
		address = opts.ServerAddress
	}

	logger.DebugKV(ctx, "Connecting to runner", "control_address", address)

	return common.Dial(ctx, address, common.WithCallTimeout(cfg.Timeout))
}

func output(opts *Options) io.Writer {
	if opts.Out != nil {
		return opts.Out
	}

	return os.Stdout
}

// printStatus writes doc as indented JSON or as a summary line.
func printStatus(out io.Writer, doc *structpb.Struct, asJSON bool) error {
	if asJSON {
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode status: %w", err)
		}

		_, err = fmt.Fprintln(out, string(data))

		return err
	}

	_, err := fmt.Fprintln(out, summary(doc))

	return err
}

// summary renders a status document as one human-readable line.
func summary(doc *structpb.Struct) string {
	current, err := control.StatusFromProto(doc)
	if err != nil {
		return fmt.Sprintf("<undecodable status: %v>", err)
	}

	return formatStatus(current)
}

// isRunning reports whether doc describes a routine still in progress.
func isRunning(doc *structpb.Struct) bool {
	current, err := control.StatusFromProto(doc)

	return err == nil && current.Running
}

// formatStatus converts a status to a readable line.
func formatStatus(current *workout.Status) string {
	if current.Title == "" {
		return "<no routine>"
	}

	if !current.Running {
		return fmt.Sprintf("%s: not running", current.Title)
	}

	line := fmt.Sprintf("%s: step %d/%d", current.Title, current.StepNumber(), current.StepCount)

	switch state := current.State.(type) {
	case workout.Countdown:
		return fmt.Sprintf("%s, %ds left: %s", line, state.RemainingSeconds(), state.Text())
	case workout.Stopwatch:
		return fmt.Sprintf("%s, %s elapsed: %s", line, state.Clock(), state.Text())
	case workout.Speech:
		return fmt.Sprintf("%s, saying: %s", line, state.Text())
	default:
		return line
	}
}
