package display

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
)

// syncBuffer is a bytes.Buffer safe for the logger and the test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

// TestPlain_LogsWholeSeconds logs once per step, text and whole second.
func TestPlain_LogsWholeSeconds(t *testing.T) {
	t.Parallel()

	sink := new(syncBuffer)
	ctx := logger.ToContext(context.Background(), logger.NewWithSink(zapcore.DebugLevel, zapcore.AddSync(sink)))
	plain := NewPlain(ctx)

	status := func(index int, state workout.State) *workout.Status {
		return &workout.Status{Title: "Short Stretching", StepIndex: index, StepCount: 2, State: state}
	}

	plain.Show(nil)
	plain.Show(status(0, nil))
	plain.Show(status(0, workout.Speech{DisplayText: "Neck rolls"}))
	plain.Show(status(0, workout.Speech{DisplayText: "Neck rolls"}))
	plain.Show(status(0, workout.Countdown{Remaining: 2 * time.Second, DisplayText: "Neck rolls"}))
	plain.Show(status(0, workout.Countdown{Remaining: 1950 * time.Millisecond, DisplayText: "Neck rolls"}))
	plain.Show(status(0, workout.Countdown{Remaining: 1000 * time.Millisecond, DisplayText: "Neck rolls"}))
	plain.Show(status(1, workout.Stopwatch{Elapsed: 400 * time.Millisecond, DisplayText: "Hold"}))
	plain.Show(status(1, workout.Stopwatch{Elapsed: 900 * time.Millisecond, DisplayText: "Hold"}))
	plain.Show(status(1, workout.Stopwatch{Elapsed: 1100 * time.Millisecond, DisplayText: "Hold"}))

	plain.Finish(true)
	plain.Finish(false)
	require.NoError(t, plain.Run(context.Background()))

	lines := sink.lines()
	require.Len(t, lines, 6)
	require.Contains(t, lines[0], "Neck rolls")
	require.Contains(t, lines[0], "1/2")
	require.Contains(t, lines[1], "remaining")
	require.Contains(t, lines[2], "remaining")
	require.Contains(t, lines[3], "00:00")
	require.Contains(t, lines[4], "00:01")
	require.Contains(t, lines[5], "Routine complete")
}

// TestPlain_RunContext returns when the context is done.
func TestPlain_RunContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewPlain(context.Background()).Run(ctx))
}
