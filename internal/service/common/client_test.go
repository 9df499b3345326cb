//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oshokin/tickstack/internal/api/grpc/control"
	"github.com/oshokin/tickstack/internal/domain/workout"
)

// stubService answers control requests from memory.
type stubService struct {
	mu     sync.Mutex
	actors []*workout.Actor
	status *workout.Status
}

func (s *stubService) Next(_ context.Context, actor *workout.Actor) (*workout.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == nil {
		return nil, control.ErrNoRun
	}

	s.actors = append(s.actors, actor)
	s.status.StepIndex++

	return s.status.Clone(), nil
}

func (s *stubService) Status(context.Context) *workout.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status.Clone()
}

// newBufClient serves svc over an in-memory listener and returns a client for it.
func newBufClient(t *testing.T, svc control.Service) *Client {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	control.RegisterControlServiceServer(server, control.NewServer(svc))

	go func() {
		_ = server.Serve(listener)
	}()

	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	client := &Client{
		conn:        conn,
		api:         control.NewControlServiceClient(conn),
		callTimeout: 5 * time.Second,
	}

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)

	c, err = Dial(context.Background(), "127.0.0.1:47600", WithCallTimeout(time.Second))
	require.NoError(t, err)
	require.Equal(t, time.Second, c.callTimeout)
	require.NoError(t, c.Close())
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	_, hasDeadline := ctx.Deadline()
	require.False(t, hasDeadline)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_Roundtrip drives Next and Status through a real gRPC stack.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := &stubService{status: &workout.Status{
		Title:     "Short Stretching",
		Running:   true,
		StepCount: 4,
		State:     workout.Speech{DisplayText: "Shoulder rolls"},
	}}
	client := newBufClient(t, svc)

	actor := &workout.Actor{Hostname: "studio", Username: "coach"}

	doc, err := client.Next(context.Background(), actor)
	require.NoError(t, err)
	require.Equal(t, "Short Stretching", doc.GetFields()["title"].GetStringValue())

	current, err := client.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, current.StepIndex)
	require.Equal(t, workout.Speech{DisplayText: "Shoulder rolls"}, current.State)

	_, err = client.Next(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []*workout.Actor{actor, nil}, svc.actors)
}

// TestClient_NoRun surfaces codes.Unavailable when nothing is running.
func TestClient_NoRun(t *testing.T) {
	t.Parallel()

	client := newBufClient(t, new(stubService))

	_, err := client.Next(context.Background(), nil)
	require.Equal(t, codes.Unavailable, status.Code(err))

	_, err = client.Status(context.Background())
	require.Equal(t, codes.Unavailable, status.Code(err))
}
