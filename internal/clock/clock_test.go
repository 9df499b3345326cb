package clock

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// manualFrames hands out a test-owned channel so frames can be pushed one by one.
type manualFrames struct {
	ch chan time.Time
}

func newManualFrames() *manualFrames {
	return &manualFrames{ch: make(chan time.Time)}
}

// Frames implements FrameSource.
func (m *manualFrames) Frames(context.Context) <-chan time.Time {
	return m.ch
}

// recorder collects signals delivered on the clock goroutine.
type recorder struct {
	mu      sync.Mutex
	signals []Signal
}

func (r *recorder) handle(s Signal) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.signals = append(r.signals, s)

	return true
}

func (r *recorder) ticks() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []time.Duration

	for _, s := range r.signals {
		if s.Kind == Tick {
			out = append(out, s.Elapsed)
		}
	}

	return out
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.signals)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// TestClock_DriftCorrectedTicks feeds irregular frames and checks tick boundaries.
func TestClock_DriftCorrectedTicks(t *testing.T) {
	t.Parallel()

	var (
		frames = newManualFrames()
		rec    = new(recorder)
		clk    = New()
		done   = make(chan error, 1)
		origin = time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC)
	)

	go func() {
		done <- clk.Run(context.Background(), frames, rec.handle)
	}()

	for _, offset := range []int{0, 300, 990, 1010, 1500, 2001, 2999, 3400, 5200} {
		frames.ch <- origin.Add(ms(offset))
	}

	close(frames.ch)
	require.ErrorIs(t, <-done, ErrFramesClosed)

	// The 4 s boundary was never observed, so no tick is replayed for it.
	require.Equal(t, []time.Duration{0, ms(1010), ms(2001), ms(3400), ms(5200)}, rec.ticks())
	require.Equal(t, origin, clk.Origin())
	require.Equal(t, origin.Add(ms(5200)), clk.LastTick())
	require.False(t, clk.Running())
}

// TestClock_ElapsedNeverDecreases ignores frames older than the newest one.
func TestClock_ElapsedNeverDecreases(t *testing.T) {
	t.Parallel()

	var (
		frames = newManualFrames()
		rec    = new(recorder)
		done   = make(chan error, 1)
		origin = time.Now()
	)

	go func() {
		done <- New().Run(context.Background(), frames, rec.handle)
	}()

	frames.ch <- origin
	frames.ch <- origin.Add(ms(1200))
	frames.ch <- origin.Add(ms(1100))
	close(frames.ch)
	<-done

	var previous time.Duration
	for _, s := range rec.signals {
		require.GreaterOrEqual(t, s.Elapsed, previous)
		previous = s.Elapsed
	}

	require.Equal(t, ms(1200), previous)
}

// TestClock_HandlerEndsRun covers natural completion and the halted latch.
func TestClock_HandlerEndsRun(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		clk := New()

		var last time.Duration

		err := clk.Run(context.Background(), NewTickerFrames(100*time.Millisecond), func(s Signal) bool {
			last = s.Elapsed
			return s.Elapsed < 2*time.Second
		})

		require.NoError(t, err)
		require.Equal(t, 2*time.Second, last)
		require.False(t, clk.Running())

		// Halted until Reset.
		require.NoError(t, clk.Run(context.Background(), NewTickerFrames(0), func(Signal) bool {
			t.Fatal("halted clock delivered a signal")
			return true
		}))

		clk.Reset()

		calls := 0
		require.NoError(t, clk.Run(context.Background(), NewTickerFrames(0), func(Signal) bool {
			calls++
			return false
		}))
		require.Equal(t, 1, calls)
	})
}

// TestClock_StopBeforeRun makes the next run return without consuming frames.
func TestClock_StopBeforeRun(t *testing.T) {
	t.Parallel()

	clk := New()
	clk.Stop()
	clk.Stop()

	require.NoError(t, clk.Run(context.Background(), newManualFrames(), func(Signal) bool {
		t.Fatal("stopped clock delivered a signal")
		return true
	}))
}

// TestClock_StopWhileRunning checks that nothing is delivered after Stop returns.
func TestClock_StopWhileRunning(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var (
			clk  = New()
			rec  = new(recorder)
			done = make(chan error, 1)
		)

		go func() {
			done <- clk.Run(context.Background(), NewTickerFrames(100*time.Millisecond), rec.handle)
		}()

		time.Sleep(2500 * time.Millisecond)
		synctest.Wait()
		require.True(t, clk.Running())

		clk.Stop()
		delivered := rec.len()

		time.Sleep(3 * time.Second)
		synctest.Wait()

		require.NoError(t, <-done)
		require.Equal(t, delivered, rec.len())
		require.Equal(t, []time.Duration{0, time.Second, 2 * time.Second}, rec.ticks())
	})
}

// TestClock_ContextCanceled reports cancellation as an error.
func TestClock_ContextCanceled(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- New().Run(ctx, NewTickerFrames(0), func(Signal) bool { return true })
		}()

		time.Sleep(time.Second)
		cancel()

		require.ErrorIs(t, <-done, context.Canceled)
	})
}

// TestTickerFrames_FirstFrameImmediate checks the cadence of the ticker source.
func TestTickerFrames_FirstFrameImmediate(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		start := time.Now()
		frames := NewTickerFrames(250 * time.Millisecond).Frames(ctx)

		require.WithinDuration(t, start, <-frames, 0)
		require.WithinDuration(t, start.Add(250*time.Millisecond), <-frames, 0)
		require.WithinDuration(t, start.Add(500*time.Millisecond), <-frames, 0)

		cancel()

		for range frames {
		}
	})
}
