package runner

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/service/common"
)

const waitFor = 5 * time.Second

func listen(t *testing.T) net.Listener {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	return lis
}

// TestSession_RemoteNextCompletesRun drives a run through the control endpoint.
func TestSession_RemoteNextCompletesRun(t *testing.T) {
	t.Parallel()

	var (
		tl     = phraseTimeline("Warm up", "Cool down")
		screen = newFakeScreen()
		store  = new(memoryJournal)
		lis    = listen(t)
		done   = make(chan error, 1)
	)

	run := &session{
		timeline: tl,
		service:  newService(tl),
		screen:   screen,
		listener: lis,
		journal:  store,
	}

	go func() {
		done <- run.run(context.Background())
	}()

	client, err := common.Dial(context.Background(), lis.Addr().String())
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	actor := &workout.Actor{Hostname: "phone", Username: "runner"}

	require.Eventually(t, func() bool { return screen.shown("Warm up") }, waitFor, 10*time.Millisecond)

	_, err = client.Next(context.Background(), actor)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return screen.shown("Cool down") }, waitFor, 10*time.Millisecond)

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, status.StepIndex)
	require.Equal(t, workout.Speech{DisplayText: "Cool down"}, status.State)

	_, err = client.Next(context.Background(), nil)
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("session did not end")
	}

	require.Equal(t, []bool{true}, screen.finished)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, records[0].Completed)
	require.Equal(t, 2, records[0].StepsDone)
	require.Len(t, records[0].Skips, 2)
	require.Equal(t, actor, records[0].Skips[0].Actor)
	require.Nil(t, records[0].Skips[1].Actor)
}

// TestSession_QuitAbortsRun ends the run when the screen closes early.
func TestSession_QuitAbortsRun(t *testing.T) {
	t.Parallel()

	var (
		tl     = phraseTimeline("Warm up", "Cool down")
		screen = newFakeScreen()
		store  = new(memoryJournal)
		done   = make(chan error, 1)
	)

	run := &session{
		timeline: tl,
		service:  newService(tl),
		screen:   screen,
		listener: listen(t),
		journal:  store,
	}

	go func() {
		done <- run.run(context.Background())
	}()

	require.Eventually(t, func() bool { return screen.shown("Warm up") }, waitFor, 10*time.Millisecond)
	close(screen.quit)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("session did not end")
	}

	require.False(t, tl.Running())
	require.Equal(t, []bool{false}, screen.finished)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.False(t, records[0].Completed)
	require.Equal(t, 0, records[0].StepsDone)
}
