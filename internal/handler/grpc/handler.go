package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const authorizationMetadata = "authorization"

// RequestDispatcher is the dispatcher as seen by the gRPC transport.
type RequestDispatcher interface {
	HandleRequest(ctx context.Context, req models.Request) *models.Response
}

// Handler is the root gRPC transport handler. It implements
// [DispatcherServer] on top of a request dispatcher.
type Handler struct {
	dispatcher RequestDispatcher
	traceID    *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler constructs a [Handler] for dispatcher.
func NewHandler(dispatcher RequestDispatcher, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		dispatcher: dispatcher,
		traceID:    utils.NewUUIDGenerator(),
		logger:     logger,
	}
}

// Register adds the dispatch.v1.Dispatcher service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&DispatcherServiceDesc, h)
}

// ServerOptions returns the interceptors every server hosting the handler
// should be built with.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging),
	}
}

// Handle dispatches req. The token falls back to the bearer token of the
// "authorization" metadata when the message carries none.
func (h *Handler) Handle(ctx context.Context, req *models.Request) (*models.Response, error) {
	if req.Token == "" {
		req.Token = metadataToken(ctx)
	}
	return h.dispatcher.HandleRequest(ctx, *req), nil
}

func metadataToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(authorizationMetadata)
	if len(values) == 0 {
		return ""
	}

	token, err := utils.ParseBearerToken(values[0])
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("ignoring authorization metadata")
		return ""
	}
	return token
}
