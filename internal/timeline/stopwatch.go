package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/oshokin/tickstack/internal/clock"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/phrase"
)

// Stopwatch is an unbounded step: it speaks its start phrase and counts up
// until it is stopped.
type Stopwatch struct {
	lifecycle

	startPhrase string
}

// NewStopwatch returns a stopwatch announced by start.
func NewStopwatch(start string) *Stopwatch {
	s := &Stopwatch{startPhrase: start}
	s.clock = clock.New()

	return s
}

// Duration implements Step. Stopwatches report Unbounded.
func (s *Stopwatch) Duration() time.Duration {
	return Unbounded
}

// StartPhrase returns the start phrase template.
func (s *Stopwatch) StartPhrase() string {
	return s.startPhrase
}

// Run implements Step.
func (s *Stopwatch) Run(ctx context.Context) error {
	stopped, env, err := s.start()
	if err != nil {
		return err
	}

	defer s.finish()

	text := phrase.Render(s.startPhrase, nil)
	s.emit(workout.Speech{DisplayText: text})
	speakUntilStopped(ctx, env.speaker, text, stopped)

	if err = ctx.Err(); err != nil {
		return err
	}

	if s.isHalted() {
		return nil
	}

	err = s.clock.Run(ctx, env.frames, func(signal clock.Signal) bool {
		if signal.Kind == clock.Tick {
			s.emitTimer(workout.Stopwatch{Elapsed: signal.Elapsed, DisplayText: text})
		}

		return true
	})

	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, clock.ErrFramesClosed):
		logger.WarnKV(ctx, "Stopwatch lost its frame source", "phrase", text)
	}

	return nil
}
