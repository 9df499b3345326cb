//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/tickstack/internal/api/grpc/control"
	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/domain/workout"
)

// Client wraps the gRPC control client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the runner.
	conn *grpc.ClientConn
	// api is the control service client.
	api control.ControlServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the control endpoint of a running routine.
// The endpoint listens on loopback by default, so the transport is insecure.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial runner: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         control.NewControlServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Next asks the runner to skip the current step and returns the raw status document.
// A nil actor is sent as an anonymous request.
func (c *Client) Next(ctx context.Context, actor *workout.Actor) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Next(callCtx, control.ActorToProto(actor))
	if err != nil {
		return nil, fmt.Errorf("next step: %w", err)
	}

	return resp, nil
}

// GetStatus retrieves the raw status document of the running routine.
func (c *Client) GetStatus(ctx context.Context) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetStatus(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return resp, nil
}

// Status retrieves and decodes the status of the running routine.
func (c *Client) Status(ctx context.Context) (*workout.Status, error) {
	doc, err := c.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	return control.StatusFromProto(doc)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
