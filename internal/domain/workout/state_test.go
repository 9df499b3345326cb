package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestCountdownRemainingSeconds verifies ceiling rounding of remaining time.
func TestCountdownRemainingSeconds(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]int{
		0:                       0,
		-time.Second:            0,
		time.Millisecond:        1,
		time.Second:             1,
		1500 * time.Millisecond: 2,
		30 * time.Second:        30,
	}
	for remaining, want := range cases {
		require.Equal(t, want, Countdown{Remaining: remaining}.RemainingSeconds(), remaining.String())
	}
}

// TestStopwatchClock verifies the MM:SS rendering.
func TestStopwatchClock(t *testing.T) {
	t.Parallel()

	require.Equal(t, "00:00", Stopwatch{}.Clock())
	require.Equal(t, "00:07", Stopwatch{Elapsed: 7900 * time.Millisecond}.Clock())
	require.Equal(t, "02:05", Stopwatch{Elapsed: 125 * time.Second}.Clock())
	require.Equal(t, "61:01", Stopwatch{Elapsed: 3661 * time.Second}.Clock())
}

// TestStateText checks every variant exposes its phrase.
func TestStateText(t *testing.T) {
	t.Parallel()

	states := []State{
		Countdown{DisplayText: "a"},
		Stopwatch{DisplayText: "b"},
		Speech{DisplayText: "c"},
	}

	var texts []string
	for _, s := range states {
		texts = append(texts, s.Text())
	}

	require.Equal(t, []string{"a", "b", "c"}, texts)
}

// TestFormatTotal verifies the total duration rendering.
func TestFormatTotal(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0 min 0 sec", FormatTotal(0))
	require.Equal(t, "0 min 0 sec", FormatTotal(-time.Second))
	require.Equal(t, "1 min 10 sec", FormatTotal(70*time.Second))
	require.Equal(t, "12 min 0 sec", FormatTotal(12*time.Minute))
}

// TestStatusClone verifies that Clone copies fields and handles nil safely.
func TestStatusClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Status)(nil).Clone())

	s := &Status{
		RunID:         "run",
		Title:         "Monday Workout",
		Running:       true,
		StepIndex:     2,
		StepCount:     5,
		TotalDuration: time.Minute,
		StartedAt:     time.Now().UTC().Truncate(time.Second),
		State:         Countdown{Remaining: time.Second, ProgressRatio: 0.5},
	}

	c := s.Clone()
	require.Equal(t, s, c)
	require.NotSame(t, s, c)
	require.Equal(t, 3, c.StepNumber())
	require.Equal(t, 0, (&Status{}).StepNumber())
	require.Equal(t, 5, (&Status{StepIndex: 5, StepCount: 5}).StepNumber())
}
