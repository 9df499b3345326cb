package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "tickstack.v1.ControlService"

	// NextFullMethodName is the full method name of Next.
	NextFullMethodName = "/" + ServiceName + "/Next"
	// GetStatusFullMethodName is the full method name of GetStatus.
	GetStatusFullMethodName = "/" + ServiceName + "/GetStatus"
)

// ControlServiceServer is the server API for the control service.
type ControlServiceServer interface {
	// Next skips the current step. The request carries the requesting actor.
	Next(ctx context.Context, actor *structpb.Struct) (*structpb.Struct, error)
	// GetStatus returns the current run.
	GetStatus(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedControlServiceServer answers every method with codes.Unimplemented.
type UnimplementedControlServiceServer struct{}

// Next implements ControlServiceServer.
func (UnimplementedControlServiceServer) Next(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Next not implemented")
}

// GetStatus implements ControlServiceServer.
func (UnimplementedControlServiceServer) GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStatus not implemented")
}

// RegisterControlServiceServer registers srv on s.
func RegisterControlServiceServer(s grpc.ServiceRegistrar, srv ControlServiceServer) {
	s.RegisterService(&ControlServiceDesc, srv)
}

// ControlServiceDesc describes the control service for grpc.ServiceRegistrar.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Next",
			Handler:    nextHandler,
		},
		{
			MethodName: "GetStatus",
			Handler:    getStatusHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tickstack/v1/control.proto",
}

func nextHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ControlServiceServer).Next(ctx, in) //nolint:forcetypeassert // HandlerType guarantees it.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: NextFullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServiceServer).Next(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // See above.
	}

	return interceptor(ctx, in, info, handler)
}

func getStatusHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ControlServiceServer).GetStatus(ctx, in) //nolint:forcetypeassert // HandlerType guarantees it.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetStatusFullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServiceServer).GetStatus(ctx, req.(*emptypb.Empty)) //nolint:forcetypeassert // See above.
	}

	return interceptor(ctx, in, info, handler)
}

// ControlServiceClient is the client API for the control service.
type ControlServiceClient interface {
	Next(ctx context.Context, actor *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetStatus(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type controlServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewControlServiceClient returns a client bound to cc.
func NewControlServiceClient(cc grpc.ClientConnInterface) ControlServiceClient {
	return &controlServiceClient{cc: cc}
}

func (c *controlServiceClient) Next(
	ctx context.Context,
	actor *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, NextFullMethodName, actor, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *controlServiceClient) GetStatus(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetStatusFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
