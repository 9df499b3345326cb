package workout

import (
	"fmt"
	"math"
	"time"
)

// State is the observable state of the active step.
// Exactly one of Countdown, Stopwatch or Speech implements it.
type State interface {
	// Text returns the phrase shown alongside the state.
	Text() string

	isState()
}

// Countdown is the state of a bounded step while its timer runs.
type Countdown struct {
	// Remaining is the time left, never negative.
	Remaining time.Duration
	// ProgressRatio is the fraction of the step already elapsed, in [0, 1].
	ProgressRatio float64
	// DisplayText is the start phrase rendered with the remaining whole seconds.
	DisplayText string
}

// Text implements State.
func (c Countdown) Text() string {
	return c.DisplayText
}

// RemainingSeconds returns the remaining time rounded up to whole seconds.
func (c Countdown) RemainingSeconds() int {
	if c.Remaining <= 0 {
		return 0
	}

	return int(math.Ceil(c.Remaining.Seconds()))
}

func (Countdown) isState() {}

// Stopwatch is the state of an unbounded step while it counts up.
type Stopwatch struct {
	// Elapsed is the time since the stopwatch started.
	Elapsed time.Duration
	// DisplayText is the start phrase of the step.
	DisplayText string
}

// Text implements State.
func (s Stopwatch) Text() string {
	return s.DisplayText
}

// Clock renders the elapsed time as MM:SS.
func (s Stopwatch) Clock() string {
	total := int(s.Elapsed / time.Second)

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (Stopwatch) isState() {}

// Speech is emitted right before a phrase is spoken.
type Speech struct {
	// DisplayText is the phrase being spoken.
	DisplayText string
}

// Text implements State.
func (s Speech) Text() string {
	return s.DisplayText
}

func (Speech) isState() {}

// FormatTotal renders a duration as "X min Y sec".
func FormatTotal(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	seconds := int(d / time.Second)

	return fmt.Sprintf("%d min %d sec", seconds/60, seconds%60)
}
