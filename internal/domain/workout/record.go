package workout

import "time"

// Record describes one finished run of a routine.
type Record struct {
	// RunID identifies the run.
	RunID string
	// Title is the routine title.
	Title string
	// StartedAt is when the run started.
	StartedAt time.Time
	// FinishedAt is when the run ended, completed or not.
	FinishedAt time.Time
	// Completed is false when the run was aborted before its last step.
	Completed bool
	// StepsDone is how many steps finished, skipped ones included.
	StepsDone int
	// StepCount is the number of steps in the timeline.
	StepCount int
	// Skips lists the steps cut short by a next request.
	Skips []Skip
}

// Skip is a single next request handled during a run.
type Skip struct {
	// StepIndex is the zero-based step that was cut short.
	StepIndex int
	// At is when the request arrived.
	At time.Time
	// Actor is who sent the request, nil for the local keyboard.
	Actor *Actor
}

// Duration returns the wall time of the run.
func (r *Record) Duration() time.Duration {
	if r == nil || r.FinishedAt.Before(r.StartedAt) {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	cloned := *r

	if r.Skips != nil {
		cloned.Skips = make([]Skip, len(r.Skips))
		for i, skip := range r.Skips {
			skip.Actor = skip.Actor.Clone()
			cloned.Skips[i] = skip
		}
	}

	return &cloned
}
