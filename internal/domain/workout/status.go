package workout

import "time"

// Status is a snapshot of a timeline run.
type Status struct {
	// RunID identifies the run.
	RunID string
	// Title is the routine title.
	Title string
	// Running is true while the timeline executes steps.
	Running bool
	// StepIndex is the zero-based index of the current step, StepCount once the run is over.
	StepIndex int
	// StepCount is the number of steps in the timeline.
	StepCount int
	// TotalDuration is the sum of all bounded step durations.
	TotalDuration time.Duration
	// StartedAt is when the current run started, zero before the first run.
	StartedAt time.Time
	// State is the most recently emitted state, nil before the first emission.
	State State
}

// Clone returns a copy of the status. States are values and need no deep copy.
func (s *Status) Clone() *Status {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// StepNumber returns the one-based number of the current step, capped at StepCount.
func (s *Status) StepNumber() int {
	return min(s.StepIndex+1, s.StepCount)
}
