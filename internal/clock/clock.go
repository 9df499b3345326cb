package clock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TickPeriod is the cadence of the logical tick.
const TickPeriod = time.Second

// ErrFramesClosed is returned when the frame source stops before the clock does.
var ErrFramesClosed = errors.New("frame source closed")

// Kind identifies a clock signal.
type Kind int

const (
	// Frame is delivered for every frame.
	Frame Kind = iota
	// Tick is delivered on the first frame and whenever elapsed crosses a whole second.
	Tick
)

// String returns the signal kind name.
func (k Kind) String() string {
	switch k {
	case Frame:
		return "frame"
	case Tick:
		return "tick"
	default:
		return "unknown"
	}
}

// Signal is a single clock event.
type Signal struct {
	Kind    Kind
	Elapsed time.Duration
}

// Handler reacts to a signal. Returning false ends the run.
type Handler func(Signal) bool

// Clock delivers frame and tick signals relative to a per-run origin.
type Clock struct {
	mu       sync.Mutex
	running  bool
	halted   bool
	stop     chan struct{}
	origin   time.Time
	lastTick time.Time
}

// New returns an idle clock.
func New() *Clock {
	return new(Clock)
}

// Run consumes frames from source and delivers signals to handler until Stop
// is called, the handler returns false, or ctx is done. Only ctx cancellation
// and a closed frame source are reported as errors.
func (c *Clock) Run(ctx context.Context, source FrameSource, handler Handler) error {
	c.mu.Lock()
	if c.halted {
		c.mu.Unlock()
		return nil
	}

	stop := make(chan struct{})
	c.stop = stop
	c.running = true
	c.origin = time.Time{}
	c.lastTick = time.Time{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.stop = nil
		c.mu.Unlock()
	}()

	frameCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := source.Frames(frameCtx)

	var (
		elapsed  time.Duration
		nextTick time.Duration
		started  bool
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case now, ok := <-frames:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}

				return ErrFramesClosed
			}

			if !started {
				c.setOrigin(now)
				started = true
			}

			// Frames may arrive out of order; elapsed never goes back.
			if current := now.Sub(c.originTime()); current > elapsed {
				elapsed = current
			}

			if !c.deliver(handler, Signal{Kind: Frame, Elapsed: elapsed}) {
				return nil
			}

			if elapsed < nextTick {
				continue
			}

			c.markTick(now)
			nextTick = (elapsed/TickPeriod + 1) * TickPeriod

			if !c.deliver(handler, Signal{Kind: Tick, Elapsed: elapsed}) {
				return nil
			}
		}
	}
}

// Stop halts the clock. No signal is delivered once Stop returns.
// Calling Stop before Run makes the next Run return immediately.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.halted = true
	c.running = false

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// Reset clears a previous Stop so the clock can run again.
func (c *Clock) Reset() {
	c.mu.Lock()
	c.halted = false
	c.mu.Unlock()
}

// Running reports whether the clock is delivering signals.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

// Origin returns the timestamp of the first frame of the current run.
func (c *Clock) Origin() time.Time {
	return c.originTime()
}

// LastTick returns the frame timestamp of the most recent tick.
func (c *Clock) LastTick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastTick
}

// deliver calls handler unless the clock was stopped, and reports whether the
// run should continue.
func (c *Clock) deliver(handler Handler, signal Signal) bool {
	c.mu.Lock()
	halted := c.halted
	c.mu.Unlock()

	if halted {
		return false
	}

	if !handler(signal) {
		c.Stop()
		return false
	}

	return true
}

func (c *Clock) setOrigin(now time.Time) {
	c.mu.Lock()
	c.origin = now
	c.lastTick = now
	c.mu.Unlock()
}

func (c *Clock) originTime() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.origin
}

func (c *Clock) markTick(now time.Time) {
	c.mu.Lock()
	c.lastTick = now
	c.mu.Unlock()
}
