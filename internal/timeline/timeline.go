package timeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
)

// ErrAlreadyRunning is returned when Run is called while the timeline runs.
var ErrAlreadyRunning = errors.New("timeline is already running")

// Timeline runs steps strictly one after another.
type Timeline struct {
	title string
	steps []Step
	total time.Duration
	runID string
	env   environment
	wake  WakeLocker

	mu        sync.Mutex
	running   bool
	current   int
	startedAt time.Time

	observerMu sync.Mutex
	observer   Observer
	latest     workout.State
}

// New returns a timeline over steps. Steps must not be nil.
func New(title string, steps []Step, opts ...Option) *Timeline {
	t := &Timeline{
		title: title,
		steps: append([]Step(nil), steps...),
	}

	for _, step := range t.steps {
		if d := step.Duration(); d > 0 {
			t.total += d
		}
	}

	for _, opt := range opts {
		opt(t)
	}

	t.env = t.env.withDefaults()

	return t
}

// Title returns the timeline title.
func (t *Timeline) Title() string {
	return t.title
}

// Len returns the number of steps.
func (t *Timeline) Len() int {
	return len(t.steps)
}

// Steps returns a copy of the step list.
func (t *Timeline) Steps() []Step {
	return append([]Step(nil), t.steps...)
}

// TotalDuration returns the sum of countdown durations, computed once in New.
func (t *Timeline) TotalDuration() time.Duration {
	return t.total
}

// OnStateChange replaces the observer. The new observer receives the next
// state emitted by the current step.
func (t *Timeline) OnStateChange(observer Observer) {
	t.observerMu.Lock()
	t.observer = observer
	t.observerMu.Unlock()
}

// Run executes every step in order and returns once the last one is done.
// Cancelling ctx aborts the current step and returns ctx.Err().
func (t *Timeline) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrAlreadyRunning
	}

	t.running = true
	t.current = 0
	t.startedAt = time.Now()
	t.mu.Unlock()

	t.observerMu.Lock()
	t.latest = nil
	t.observerMu.Unlock()

	ctx = logger.WithKV(ctx, "timeline", t.title)
	lock := t.acquireWakeLock(ctx)

	defer func() {
		t.releaseWakeLock(ctx, lock)

		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	logger.DebugKV(ctx, "Timeline started", "steps", len(t.steps), "total", t.total)

	for {
		t.mu.Lock()
		if t.current >= len(t.steps) {
			t.mu.Unlock()
			break
		}

		index := t.current
		step := t.steps[index]

		// Armed under the lock so Next always reaches the step about to run.
		step.OnStateChange(t.forward)
		step.begin(t.env)
		t.mu.Unlock()

		if err := step.Run(ctx); err != nil {
			return err
		}

		logger.DebugKV(ctx, "Step done", "index", index)

		t.mu.Lock()
		t.current++
		t.mu.Unlock()
	}

	logger.DebugKV(ctx, "Timeline finished")

	return nil
}

// Next stops the current step so the timeline moves on.
// It does nothing when the timeline is not running.
func (t *Timeline) Next() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || t.current < 0 || t.current >= len(t.steps) {
		return
	}

	t.steps[t.current].Stop()
}

// Running reports whether Run is in progress.
func (t *Timeline) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

// Status returns a snapshot of the timeline.
func (t *Timeline) Status() *workout.Status {
	t.mu.Lock()
	status := &workout.Status{
		RunID:         t.runID,
		Title:         t.title,
		Running:       t.running,
		StepIndex:     t.current,
		StepCount:     len(t.steps),
		TotalDuration: t.total,
		StartedAt:     t.startedAt,
	}
	t.mu.Unlock()

	t.observerMu.Lock()
	status.State = t.latest
	t.observerMu.Unlock()

	return status
}

// forward hands a step state to whichever observer is registered right now.
func (t *Timeline) forward(state workout.State) {
	t.observerMu.Lock()
	t.latest = state
	observer := t.observer
	t.observerMu.Unlock()

	if observer != nil {
		observer(state)
	}
}

func (t *Timeline) acquireWakeLock(ctx context.Context) WakeLock {
	if t.wake == nil {
		return nil
	}

	lock, err := t.wake.Acquire(ctx)
	if err != nil {
		logger.DebugKV(ctx, "Screen wake lock unavailable", "error", err)
		return nil
	}

	logger.Debug(ctx, "Screen wake lock acquired")

	return lock
}

func (t *Timeline) releaseWakeLock(ctx context.Context, lock WakeLock) {
	if lock == nil {
		return
	}

	if err := lock.Release(); err != nil {
		logger.DebugKV(ctx, "Screen wake lock release failed", "error", err)
		return
	}

	logger.Debug(ctx, "Screen wake lock released")
}
