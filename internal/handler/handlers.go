package handler

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/handler/grpc"
	"github.com/MKhiriev/go-api-dispatch/internal/handler/http"
	"github.com/MKhiriev/go-api-dispatch/internal/handler/nats"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/metrics"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// RequestDispatcher is shared by every transport handler.
type RequestDispatcher interface {
	HandleRequest(ctx context.Context, req models.Request) *models.Response
}

// Handlers groups the transport handlers enabled by the configuration.
// A nil field means the transport is disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
	NATS *nats.Handler
}

// NewHandlers builds a handler for every configured transport: HTTP when
// Server.HTTPAddress is set, gRPC when Server.GRPCAddress is set and NATS when
// Broker.URL is set. collector may be nil.
func NewHandlers(dispatcher RequestDispatcher, collector *metrics.Collector, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(dispatcher, collector, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(dispatcher, logger)
	}
	if cfg.Broker.URL != "" {
		handlers.NATS = nats.NewHandler(dispatcher, cfg, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil && handlers.NATS == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
