package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const traceIDMetadata = "x-trace-id"

// withTraceID reuses the caller's x-trace-id or generates one, sends it back
// as header metadata and attaches a logger carrying it to the context.
func (h *Handler) withTraceID(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	var traceID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDMetadata); len(values) > 0 {
			traceID = values[0]
		}
	}
	if traceID == "" {
		traceID = h.traceID.Generate()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	ctx = utils.WithTraceID(l.WithContext(ctx), traceID)

	if err := grpc.SetHeader(ctx, metadata.Pairs(traceIDMetadata, traceID)); err != nil {
		l.Debug().Err(err).Msg("failed to set trace id header")
	}

	return next(ctx, req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	resp, err := next(ctx, req)

	event := log.Info().
		Str("rpc", info.FullMethod).
		Dur("duration", time.Since(start))
	if envelope, ok := resp.(*models.Response); ok && envelope != nil {
		event = event.Int("status", envelope.StatusCode())
	}
	if err != nil {
		event = event.Str("code", status.Code(err).String()).Err(err)
	}
	event.Send()

	return resp, err
}
