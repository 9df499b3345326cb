package runner

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/tickstack/internal/api/grpc/control"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/timeline"
)

// service exposes a running timeline to the control endpoint and the keyboard.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// timeline is the routine being run.
	timeline *timeline.Timeline
	// now returns the current time.
	now func() time.Time

	// mu protects skips.
	mu sync.Mutex
	// skips lists the next requests handled so far.
	skips []workout.Skip
}

// newService wraps tl.
func newService(tl *timeline.Timeline) *service {
	return &service{
		timeline: tl,
		now:      time.Now,
	}
}

// Next stops the current step. A nil actor stands for the local keyboard.
func (s *service) Next(ctx context.Context, actor *workout.Actor) (*workout.Status, error) {
	before := s.timeline.Status()
	if !before.Running || before.StepIndex >= before.StepCount {
		return nil, control.ErrNoRun
	}

	s.timeline.Next()

	s.mu.Lock()
	s.skips = append(s.skips, workout.Skip{
		StepIndex: before.StepIndex,
		At:        s.now(),
		Actor:     actor.Clone(),
	})
	s.mu.Unlock()

	logger.InfoKV(ctx, "Step skipped", "step", before.StepNumber(), "actor", actor)

	return s.timeline.Status(), nil
}

// Status returns a snapshot of the timeline.
func (s *service) Status(context.Context) *workout.Status {
	return s.timeline.Status()
}

// record describes the run once the timeline returned.
func (s *service) record(completed bool) *workout.Record {
	status := s.timeline.Status()

	s.mu.Lock()
	skips := append([]workout.Skip(nil), s.skips...)
	s.mu.Unlock()

	return &workout.Record{
		RunID:      status.RunID,
		Title:      status.Title,
		StartedAt:  status.StartedAt,
		FinishedAt: s.now(),
		Completed:  completed,
		StepsDone:  status.StepIndex,
		StepCount:  status.StepCount,
		Skips:      skips,
	}
}
