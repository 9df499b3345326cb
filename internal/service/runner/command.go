package runner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/oshokin/tickstack/internal/clock"
	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/repository/journal"
	"github.com/oshokin/tickstack/internal/routine"
	"github.com/oshokin/tickstack/internal/service/power"
	"github.com/oshokin/tickstack/internal/service/speech"
	"github.com/oshokin/tickstack/internal/timeline"
	"github.com/oshokin/tickstack/internal/ui/display"
)

// Options controls the tickstack run command.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Routine is the slug or title of the routine to run.
	Routine string
	// File is an optional routine YAML file run instead of a named routine.
	File string
	// ListenAddress provides an optional listen address override for the control endpoint.
	ListenAddress string
	// NoTUI prints progress as log lines even on a terminal.
	NoTUI bool
	// NoSpeech shows phrases without saying them.
	NoSpeech bool
	// NoJournal skips recording the run.
	NoJournal bool
}

var (
	// ErrNoRoutine indicates that neither a routine name nor a file was given.
	ErrNoRoutine = errors.New("no routine selected")
	// ErrNoControlAddress indicates missing control endpoint configuration.
	ErrNoControlAddress = errors.New("no control address configured")
)

// Run executes one routine and blocks until it is done, the user quits or ctx is canceled.
//
//nolint:funlen // Linear wiring of the run is easier to follow in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "runner")

	// Load configuration first to get frame, speech and control settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Pick the routine and surface template warnings before anything starts.
	selected, err := selectRoutine(settings.RoutinesDir, opts)
	if err != nil {
		return err
	}

	for _, warning := range selected.Warnings {
		logger.WarnKV(ctx, "Routine warning", "routine", selected.Slug, "warning", warning)
	}

	// Determine listen address: CLI argument overrides config.
	listenAddress, err := resolveListenAddress(settings.ControlAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	// The terminal UI owns the screen, so logs go to the log file or nowhere.
	interactive := !opts.NoTUI && isTerminal(os.Stdout) && isTerminal(os.Stdin)
	if interactive {
		var restore func()

		ctx, restore, err = redirectLogs(ctx, settings.LogFile)
		if err != nil {
			return err
		}

		defer restore()
	}

	// Build the timeline with its platform collaborators.
	runID := uuid.NewString()
	timelineOpts := []timeline.Option{
		timeline.WithSpeaker(newSpeaker(ctx, settings.Speech, opts.NoSpeech)),
		timeline.WithFrames(clock.NewTickerFrames(settings.FrameInterval)),
		timeline.WithRunID(runID),
	}

	if !settings.DisableWakeLock {
		timelineOpts = append(timelineOpts, timeline.WithWakeLocker(screenWakeLocker()))
	}

	tl, err := routine.Build(selected, timelineOpts...)
	if err != nil {
		return fmt.Errorf("build routine %q: %w", selected.Slug, err)
	}

	svc := newService(tl)

	// A busy control address usually means another routine is running.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	run := &session{
		timeline: tl,
		service:  svc,
		listener: lis,
	}

	if interactive {
		run.screen = display.NewTUI(tl.Status(), func() {
			_, _ = svc.Next(ctx, nil)
		})
	} else {
		run.screen = display.NewPlain(ctx)
	}

	if !opts.NoJournal {
		run.journal = journal.NewFileRepository(settings.JournalFile, settings.JournalLimit)
	}

	logger.InfoKV(
		ctx,
		"Starting routine",
		"routine", selected.Title,
		"steps", tl.Len(),
		"total", tl.TotalDuration(),
		"run_id", runID,
	)

	return run.run(ctx)
}

// selectRoutine loads the routine named in opts.
func selectRoutine(dir string, opts *Options) (*routine.Routine, error) {
	if opts.File != "" {
		selected, err := routine.LoadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("load routine file: %w", err)
		}

		return selected, nil
	}

	if opts.Routine == "" {
		return nil, ErrNoRoutine
	}

	routines, err := routine.LoadAll(dir)
	if err != nil {
		return nil, fmt.Errorf("load routines: %w", err)
	}

	return routine.Find(routines, opts.Routine)
}

// resolveListenAddress determines the listen address for the control endpoint.
// If override is provided, uses it directly, otherwise the configured address.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoControlAddress
	}

	return configAddr, nil
}

// newSpeaker detects the speech backend. A missing synthesizer only costs the voice.
func newSpeaker(ctx context.Context, settings config.Speech, disabled bool) timeline.Speaker {
	if disabled {
		settings.Disabled = true
	}

	speaker, err := speech.Detect(settings)
	if err != nil {
		logger.WarnKV(ctx, "Speech is unavailable, phrases are shown only", "error", err)
	} else {
		logger.DebugKV(ctx, "Speech backend selected", "speaker", speaker)
	}

	return speech.NewAnnouncer(speaker, settings.Timeout)
}

// screenWakeLocker keeps the display awake with the platform inhibitor.
func screenWakeLocker() timeline.WakeLocker {
	return timeline.WakeLockerFunc(func(ctx context.Context) (timeline.WakeLock, error) {
		lock, err := power.AcquireScreenLock(ctx)
		if err != nil {
			return nil, err
		}

		return lock, nil
	})
}

// redirectLogs sends every log line to path, or discards them when path is empty.
// The returned function restores the previous global logger.
func redirectLogs(ctx context.Context, path string) (context.Context, func(), error) {
	sink, closer, err := logger.OpenSink(path)
	if err != nil {
		return ctx, nil, err
	}

	previous := logger.Logger()
	quiet := logger.NewWithSink(nil, sink)
	logger.SetLogger(quiet)

	restore := func() {
		logger.SetLogger(previous)
		_ = closer.Close()
	}

	return logger.ToContext(ctx, quiet.Named("runner")), restore, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
