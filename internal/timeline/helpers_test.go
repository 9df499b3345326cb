package timeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/tickstack/internal/clock"
	"github.com/oshokin/tickstack/internal/domain/workout"
)

// testFrameInterval divides a second evenly so frames land on tick boundaries.
const testFrameInterval = 250 * time.Millisecond

// fakeSpeaker records phrases and takes utterance to say each of them.
type fakeSpeaker struct {
	mu        sync.Mutex
	utterance time.Duration
	said      []string
	cancelled []string
}

func (f *fakeSpeaker) Speak(ctx context.Context, text string) error {
	f.mu.Lock()
	f.said = append(f.said, text)
	utterance := f.utterance
	f.mu.Unlock()

	if utterance <= 0 {
		return nil
	}

	timer := time.NewTimer(utterance)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		f.mu.Lock()
		f.cancelled = append(f.cancelled, text)
		f.mu.Unlock()

		return ctx.Err()
	}
}

func (f *fakeSpeaker) spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.said...)
}

func (f *fakeSpeaker) interrupted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.cancelled...)
}

// stateLog is an observer that keeps every state it receives.
type stateLog struct {
	mu     sync.Mutex
	states []workout.State
}

func (l *stateLog) observe(state workout.State) {
	l.mu.Lock()
	l.states = append(l.states, state)
	l.mu.Unlock()
}

func (l *stateLog) all() []workout.State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]workout.State(nil), l.states...)
}

func (l *stateLog) countdowns() []workout.Countdown {
	var out []workout.Countdown

	for _, state := range l.all() {
		if c, ok := state.(workout.Countdown); ok {
			out = append(out, c)
		}
	}

	return out
}

func (l *stateLog) stopwatches() []workout.Stopwatch {
	var out []workout.Stopwatch

	for _, state := range l.all() {
		if s, ok := state.(workout.Stopwatch); ok {
			out = append(out, s)
		}
	}

	return out
}

func (l *stateLog) speeches() []string {
	var out []string

	for _, state := range l.all() {
		if s, ok := state.(workout.Speech); ok {
			out = append(out, s.DisplayText)
		}
	}

	return out
}

// fakeWakeLocker counts acquisitions and releases.
type fakeWakeLocker struct {
	mu       sync.Mutex
	err      error
	acquired int
	released int
}

func (f *fakeWakeLocker) Acquire(context.Context) (WakeLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	f.acquired++

	return f, nil
}

func (f *fakeWakeLocker) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.released++

	return nil
}

func (f *fakeWakeLocker) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.acquired, f.released
}

var errNoWakeLock = errors.New("wake lock not supported")

func mustCountdown(t *testing.T, seconds int, start string, opts ...CountdownOption) *Countdown {
	t.Helper()

	c, err := NewCountdown(time.Duration(seconds)*time.Second, start, opts...)
	require.NoError(t, err)

	return c
}

func testFrames() clock.FrameSource {
	return clock.NewTickerFrames(testFrameInterval)
}

// runAsync starts tl in the background and returns the channel with its result.
func runAsync(ctx context.Context, tl *Timeline) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- tl.Run(ctx)
	}()

	return done
}

func remainingSeconds(states []workout.Countdown) []int {
	out := make([]int, 0, len(states))
	for _, s := range states {
		out = append(out, s.RemainingSeconds())
	}

	return out
}

func countdownTexts(states []workout.Countdown) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.DisplayText)
	}

	return out
}
