package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/routine"
	"github.com/oshokin/tickstack/internal/service/common"
)

// Options configures the list command.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Routine, when set, prints the steps of that routine instead of the catalog.
	Routine string
	// Out receives the command output, os.Stdout if nil.
	Out io.Writer
}

// Run prints the available routines or the steps of one of them.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "list")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	routines, err := routine.LoadAll(settings.RoutinesDir)
	if err != nil {
		return fmt.Errorf("load routines: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Routine == "" {
		logger.DebugKV(ctx, "Listing routines", "count", len(routines), "routines_dir", settings.RoutinesDir)
		return writeCatalog(out, routines)
	}

	selected, err := routine.Find(routines, opts.Routine)
	if err != nil {
		return err
	}

	for _, warning := range selected.Warnings {
		logger.WarnKV(ctx, "Routine warning", "routine", selected.Slug, "warning", warning)
	}

	return writeSteps(out, selected)
}

func writeCatalog(out io.Writer, routines []*routine.Routine) error {
	rows := make([][]string, 0, len(routines))

	for _, r := range routines {
		steps, err := routine.Expand(r)
		if err != nil {
			return fmt.Errorf("expand %s: %w", r.Slug, err)
		}

		rows = append(rows, []string{
			r.Slug,
			r.Title,
			strconv.Itoa(len(steps)),
			workout.FormatTotal(r.TotalDuration()),
			r.Source,
		})
	}

	return common.WriteTable(out, []string{"SLUG", "TITLE", "STEPS", "TOTAL", "SOURCE"}, rows)
}

func writeSteps(out io.Writer, r *routine.Routine) error {
	steps, err := routine.Expand(r)
	if err != nil {
		return fmt.Errorf("expand %s: %w", r.Slug, err)
	}

	if _, err = fmt.Fprintf(out, "%s (%s)\n", r.Title, workout.FormatTotal(r.TotalDuration())); err != nil {
		return err
	}

	if r.Description != "" {
		if _, err = fmt.Fprintln(out, r.Description); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(steps))

	for i, step := range steps {
		seconds := "-"
		if step.Type == routine.StepCountdown {
			seconds = strconv.Itoa(step.Seconds)
		}

		rows = append(rows, []string{strconv.Itoa(i + 1), string(step.Type), seconds, step.Say, step.End})
	}

	return common.WriteTable(out, []string{"#", "TYPE", "SECONDS", "SAY", "END"}, rows)
}
