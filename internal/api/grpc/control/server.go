package control

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/tickstack/internal/domain/workout"
)

// ErrNoRun is returned by a Service when no routine is running.
var ErrNoRun = errors.New("no routine is running")

// Service abstracts the operations the transport layer depends on.
type Service interface {
	Next(ctx context.Context, actor *workout.Actor) (*workout.Status, error)
	Status(ctx context.Context) *workout.Status
}

// Server implements the control gRPC API.
type Server struct {
	UnimplementedControlServiceServer

	// service runs the routine the requests act upon.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Next skips the current step of the running routine.
func (s *Server) Next(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	current, err := s.service.Next(ctx, ActorFromProto(req))

	switch {
	case errors.Is(err, ErrNoRun):
		return nil, status.Error(codes.Unavailable, err.Error())
	case err != nil:
		return nil, status.Error(codes.Internal, "unable to skip step")
	}

	return encode(current)
}

// GetStatus returns the current run.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	current := s.service.Status(ctx)
	if current == nil {
		return nil, status.Error(codes.Unavailable, ErrNoRun.Error())
	}

	return encode(current)
}

func encode(current *workout.Status) (*structpb.Struct, error) {
	doc, err := StatusToProto(current)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return doc, nil
}
