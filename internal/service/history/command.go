package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/repository/journal"
	"github.com/oshokin/tickstack/internal/service/common"
)

// Options configures the history command.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Limit is the number of most recent runs printed, all when zero.
	Limit int
	// Out receives the command output, os.Stdout if nil.
	Out io.Writer
}

// Run prints the journal, newest run first.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "history")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	repo := journal.NewFileRepository(settings.JournalFile, settings.JournalLimit)

	records, err := repo.Load(ctx)

	switch {
	case errors.Is(err, journal.ErrNotFound):
		logger.DebugKV(ctx, "No journal yet", "journal_file", settings.JournalFile)

		_, err = fmt.Fprintln(out, "No runs recorded yet.")

		return err
	case err != nil:
		return fmt.Errorf("load journal: %w", err)
	}

	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[len(records)-opts.Limit:]
	}

	rows := make([][]string, 0, len(records))

	for i := len(records) - 1; i >= 0; i-- {
		rows = append(rows, formatRecord(records[i]))
	}

	return common.WriteTable(out, []string{"STARTED", "ROUTINE", "STEPS", "DURATION", "COMPLETED", "SKIPS"}, rows)
}

// formatRecord converts a record to a table row.
func formatRecord(record *workout.Record) []string {
	started := "-"
	if !record.StartedAt.IsZero() {
		started = record.StartedAt.Local().Format(time.DateTime)
	}

	return []string{
		started,
		record.Title,
		fmt.Sprintf("%d/%d", record.StepsDone, record.StepCount),
		record.Duration().Round(time.Second).String(),
		common.FormatYesNo(record.Completed),
		strconv.Itoa(len(record.Skips)),
	}
}
