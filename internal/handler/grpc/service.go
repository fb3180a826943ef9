package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const (
	serviceName       = "dispatch.v1.Dispatcher"
	handleMethodName  = "Handle"
	HandleFullMethod  = "/" + serviceName + "/" + handleMethodName
	serviceDescSource = "dispatch/v1/dispatcher.json"
)

// DispatcherServer is the server API of the dispatch.v1.Dispatcher service.
type DispatcherServer interface {
	Handle(ctx context.Context, req *models.Request) (*models.Response, error)
}

// DispatcherServiceDesc describes dispatch.v1.Dispatcher for
// grpc.ServiceRegistrar.RegisterService.
var DispatcherServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DispatcherServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: handleMethodName,
			Handler:    handleHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceDescSource,
}

// handleHandler decodes the request and runs it through the interceptor
// chain. A request that cannot be decoded is answered with a 500 envelope
// instead of a gRPC error.
func handleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.Request)
	if err := dec(in); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "grpc.handleHandler").Msg("invalid request message")
		return models.NewInternalServerError(err.Error()), nil
	}

	if interceptor == nil {
		return srv.(DispatcherServer).Handle(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HandleFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DispatcherServer).Handle(ctx, req.(*models.Request))
	}
	return interceptor(ctx, in, info, handler)
}

// DispatcherClient is the client API of the dispatch.v1.Dispatcher service.
type DispatcherClient interface {
	Handle(ctx context.Context, in *models.Request, opts ...grpc.CallOption) (*models.Response, error)
}

type dispatcherClient struct {
	cc grpc.ClientConnInterface
}

// NewDispatcherClient returns a client that always selects the JSON codec.
func NewDispatcherClient(cc grpc.ClientConnInterface) DispatcherClient {
	return &dispatcherClient{cc: cc}
}

func (c *dispatcherClient) Handle(ctx context.Context, in *models.Request, opts ...grpc.CallOption) (*models.Response, error) {
	out := new(models.Response)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, HandleFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
