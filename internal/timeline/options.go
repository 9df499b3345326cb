package timeline

import (
	"context"

	"github.com/oshokin/tickstack/internal/clock"
)

// WakeLock is a held screen-wake inhibitor.
type WakeLock interface {
	Release() error
}

// WakeLocker acquires a screen-wake inhibitor for the duration of a run.
type WakeLocker interface {
	Acquire(ctx context.Context) (WakeLock, error)
}

// WakeLockerFunc adapts a function to WakeLocker.
type WakeLockerFunc func(ctx context.Context) (WakeLock, error)

// Acquire implements WakeLocker.
func (f WakeLockerFunc) Acquire(ctx context.Context) (WakeLock, error) {
	return f(ctx)
}

// Option configures a Timeline.
type Option func(*Timeline)

// WithSpeaker sets the speaker used by every step. Steps stay silent without one.
func WithSpeaker(speaker Speaker) Option {
	return func(t *Timeline) {
		t.env.speaker = speaker
	}
}

// WithFrames sets the frame source driving step clocks.
func WithFrames(frames clock.FrameSource) Option {
	return func(t *Timeline) {
		t.env.frames = frames
	}
}

// WithWakeLocker keeps the screen awake while the timeline runs.
func WithWakeLocker(locker WakeLocker) Option {
	return func(t *Timeline) {
		t.wake = locker
	}
}

// WithRunID tags the run in status snapshots.
func WithRunID(id string) Option {
	return func(t *Timeline) {
		t.runID = id
	}
}
