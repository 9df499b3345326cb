package display

import (
	"context"
	"fmt"
	"sync"

	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
)

// Plain writes run progress as log lines, once per whole second.
type Plain struct {
	ctx context.Context //nolint:containedctx // Show is called from observers that carry no context.

	mu      sync.Mutex
	lastKey string

	once sync.Once
	done chan struct{}
}

// NewPlain creates a log renderer writing through the logger of ctx.
func NewPlain(ctx context.Context) *Plain {
	return &Plain{
		ctx:  logger.WithName(ctx, "display"),
		done: make(chan struct{}),
	}
}

// Show logs status when its step, text or whole second changed.
func (p *Plain) Show(status *workout.Status) {
	if status == nil || status.State == nil {
		return
	}

	key := fmt.Sprintf("%d|%s", status.StepIndex, progressKey(status.State))

	p.mu.Lock()
	if key == p.lastKey {
		p.mu.Unlock()
		return
	}

	p.lastKey = key
	p.mu.Unlock()

	step := fmt.Sprintf("%d/%d", status.StepNumber(), status.StepCount)

	switch s := status.State.(type) {
	case workout.Speech:
		logger.InfoKV(p.ctx, s.Text(), "step", step)
	case workout.Countdown:
		logger.InfoKV(p.ctx, s.Text(), "step", step, "remaining", s.RemainingSeconds())
	case workout.Stopwatch:
		logger.InfoKV(p.ctx, s.Text(), "step", step, "elapsed", s.Clock())
	}
}

// Finish logs the end of the run and releases Run.
func (p *Plain) Finish(completed bool) {
	p.once.Do(func() {
		if completed {
			logger.Info(p.ctx, "Routine complete")
		} else {
			logger.Info(p.ctx, "Routine stopped")
		}

		close(p.done)
	})
}

// Run blocks until Finish is called or ctx is done.
func (p *Plain) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
	case <-p.done:
	}

	return nil
}

// progressKey identifies what a state shows at whole-second resolution.
func progressKey(state workout.State) string {
	switch s := state.(type) {
	case workout.Countdown:
		return fmt.Sprintf("countdown|%s|%d", s.Text(), s.RemainingSeconds())
	case workout.Stopwatch:
		return fmt.Sprintf("stopwatch|%s|%d", s.Text(), int(s.Elapsed.Seconds()))
	default:
		return "speech|" + state.Text()
	}
}
