package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/tickstack/internal/clock"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/phrase"
)

// Countdown is a bounded step: it speaks its start phrase, counts down its
// duration and optionally speaks an end phrase.
type Countdown struct {
	lifecycle

	duration    time.Duration
	startPhrase string
	endPhrase   string
}

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithEndPhrase sets the phrase spoken once the countdown ends or is stopped.
func WithEndPhrase(end string) CountdownOption {
	return func(c *Countdown) {
		c.endPhrase = end
	}
}

// NewCountdown returns a countdown of d, which must be a positive whole number of seconds.
func NewCountdown(d time.Duration, start string, opts ...CountdownOption) (*Countdown, error) {
	if d <= 0 || d%time.Second != 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}

	c := &Countdown{
		duration:    d,
		startPhrase: start,
	}
	c.clock = clock.New()

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Duration implements Step.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// StartPhrase returns the start phrase template.
func (c *Countdown) StartPhrase() string {
	return c.startPhrase
}

// EndPhrase returns the end phrase template, empty when there is none.
func (c *Countdown) EndPhrase() string {
	return c.endPhrase
}

// Run implements Step.
//
// A stop while the start phrase is spoken cuts the phrase short and skips the
// countdown. A stop while the end phrase is spoken has no effect.
func (c *Countdown) Run(ctx context.Context) error {
	stopped, env, err := c.start()
	if err != nil {
		return err
	}

	defer c.finish()

	startText := phrase.Render(c.startPhrase, phrase.Remains(c.seconds()))
	c.emit(workout.Speech{DisplayText: startText})
	speakUntilStopped(ctx, env.speaker, startText, stopped)

	if err = ctx.Err(); err != nil {
		return err
	}

	if !c.isHalted() {
		err = c.clock.Run(ctx, env.frames, c.handleSignal)

		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, clock.ErrFramesClosed):
			logger.WarnKV(ctx, "Countdown lost its frame source", "phrase", startText)
		}
	}

	if c.endPhrase != "" {
		endText := phrase.Render(c.endPhrase, phrase.Remains(0))
		c.emit(workout.Speech{DisplayText: endText})
		speak(ctx, env.speaker, endText)
	}

	return ctx.Err()
}

// handleSignal emits a state on every tick and completes on the frame where
// the duration is reached.
func (c *Countdown) handleSignal(signal clock.Signal) bool {
	if signal.Elapsed >= c.duration {
		c.emitTimer(c.state(c.duration))
		return false
	}

	if signal.Kind == clock.Tick {
		c.emitTimer(c.state(signal.Elapsed))
	}

	return true
}

func (c *Countdown) state(elapsed time.Duration) workout.Countdown {
	state := workout.Countdown{
		Remaining:     max(c.duration-elapsed, 0),
		ProgressRatio: min(float64(elapsed)/float64(c.duration), 1),
	}
	state.DisplayText = phrase.Render(c.startPhrase, phrase.Remains(state.RemainingSeconds()))

	return state
}

func (c *Countdown) seconds() int {
	return int(c.duration / time.Second)
}
