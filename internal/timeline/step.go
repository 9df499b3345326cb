package timeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/tickstack/internal/clock"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
)

// Unbounded is the duration reported by steps without a natural end.
const Unbounded time.Duration = -1

var (
	// ErrInvalidDuration is returned for countdowns that are not a positive whole number of seconds.
	ErrInvalidDuration = errors.New("duration must be a positive whole number of seconds")
	// ErrStepRunning is returned when Run is called on a step that is already running.
	ErrStepRunning = errors.New("step is already running")
)

// Observer receives the states emitted by a step or a timeline.
// It is called synchronously on the goroutine running the step.
type Observer func(workout.State)

// Speaker speaks a phrase and blocks until the utterance ends or ctx is done.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SpeakerFunc adapts a function to Speaker.
type SpeakerFunc func(ctx context.Context, text string) error

// Speak implements Speaker.
func (f SpeakerFunc) Speak(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Step is a single item of a timeline.
type Step interface {
	// Run speaks, drives the step's clock if it has one and returns once the
	// step is done. Only ctx cancellation is reported as an error.
	Run(ctx context.Context) error
	// Stop ends the current run early. It is idempotent and does nothing
	// when the step is not running.
	Stop()
	// Duration returns the nominal duration, 0 for phrases and Unbounded for stopwatches.
	Duration() time.Duration
	// OnStateChange replaces the observer.
	OnStateChange(observer Observer)

	begin(env environment)
}

// environment carries the collaborators a step needs during one run.
type environment struct {
	speaker Speaker
	frames  clock.FrameSource
}

func (e environment) withDefaults() environment {
	if e.speaker == nil {
		e.speaker = silentSpeaker{}
	}

	if e.frames == nil {
		e.frames = clock.NewTickerFrames(clock.DefaultFrameInterval)
	}

	return e
}

type silentSpeaker struct{}

func (silentSpeaker) Speak(context.Context, string) error {
	return nil
}

// lifecycle holds the run bookkeeping shared by all step variants.
// A run is armed either by the timeline through begin or by Run itself.
type lifecycle struct {
	mu       sync.Mutex
	observer Observer
	clock    *clock.Clock
	env      environment
	armed    bool
	running  bool
	halted   bool
	stopped  chan struct{}
}

// OnStateChange implements Step.
func (l *lifecycle) OnStateChange(observer Observer) {
	l.mu.Lock()
	l.observer = observer
	l.mu.Unlock()
}

// Stop implements Step.
func (l *lifecycle) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.armed || l.halted {
		return
	}

	l.halted = true
	close(l.stopped)

	if l.clock != nil {
		l.clock.Stop()
	}
}

func (l *lifecycle) begin(env environment) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.armed {
		return
	}

	l.arm(env)
}

// arm prepares a fresh run. The caller holds l.mu.
func (l *lifecycle) arm(env environment) {
	l.armed = true
	l.halted = false
	l.stopped = make(chan struct{})
	l.env = env.withDefaults()

	if l.clock != nil {
		l.clock.Reset()
	}
}

// start marks the step as running and returns the stop channel and
// collaborators of the run.
func (l *lifecycle) start() (<-chan struct{}, environment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil, environment{}, ErrStepRunning
	}

	if !l.armed {
		l.arm(environment{})
	}

	l.running = true

	return l.stopped, l.env, nil
}

func (l *lifecycle) finish() {
	l.mu.Lock()
	l.armed = false
	l.running = false
	l.mu.Unlock()
}

func (l *lifecycle) isHalted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.halted
}

// emit delivers state to the observer.
func (l *lifecycle) emit(state workout.State) {
	l.mu.Lock()
	observer := l.observer
	l.mu.Unlock()

	if observer != nil {
		observer(state)
	}
}

// emitTimer delivers a clock-driven state unless the step was stopped.
func (l *lifecycle) emitTimer(state workout.State) {
	l.mu.Lock()
	observer := l.observer
	halted := l.halted
	l.mu.Unlock()

	if observer != nil && !halted {
		observer(state)
	}
}

// speakUntilStopped says text and cancels the utterance once the step is stopped.
func speakUntilStopped(ctx context.Context, speaker Speaker, text string, stopped <-chan struct{}) {
	speakCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-stopped:
			cancel()
		case <-speakCtx.Done():
		}
	}()

	speak(speakCtx, speaker, text)
}

// speak says text. Speech failures never fail a step.
func speak(ctx context.Context, speaker Speaker, text string) {
	if err := speaker.Speak(ctx, text); err != nil && ctx.Err() == nil {
		logger.DebugKV(ctx, "Speech failed", "text", text, "error", err)
	}
}
