package clock

import (
	"context"
	"time"
)

// DefaultFrameInterval is the frame period used when none is configured.
const DefaultFrameInterval = 50 * time.Millisecond

// FrameSource schedules frame callbacks.
type FrameSource interface {
	// Frames delivers frame timestamps until ctx is done, then closes the channel.
	Frames(ctx context.Context) <-chan time.Time
}

// TickerFrames is a FrameSource backed by time.Ticker.
// The first frame is delivered immediately.
type TickerFrames struct {
	interval time.Duration
}

// NewTickerFrames returns a frame source firing every interval.
func NewTickerFrames(interval time.Duration) *TickerFrames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	return &TickerFrames{interval: interval}
}

// Interval returns the frame period.
func (f *TickerFrames) Interval() time.Duration {
	return f.interval
}

// Frames implements FrameSource.
func (f *TickerFrames) Frames(ctx context.Context) <-chan time.Time {
	frames := make(chan time.Time)

	go func() {
		defer close(frames)

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		next := time.Now()

		for {
			select {
			case <-ctx.Done():
				return
			case frames <- next:
			}

			select {
			case <-ctx.Done():
				return
			case next = <-ticker.C:
			}
		}
	}()

	return frames
}
