package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const (
	traceIDHeader       = "X-Trace-ID"
	authorizationHeader = "Authorization"
)

// RequestDispatcher is the dispatcher as seen by the NATS transport.
type RequestDispatcher interface {
	HandleRequest(ctx context.Context, req models.Request) *models.Response
}

type Handler struct {
	dispatcher RequestDispatcher
	traceID    *utils.UUIDGenerator

	subject        string
	queue          string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(dispatcher RequestDispatcher, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Debug().Str("subject", cfg.Broker.Subject).Str("queue", cfg.Broker.Queue).Msg("NATS handler created")
	return &Handler{
		dispatcher:     dispatcher,
		traceID:        utils.NewUUIDGenerator(),
		subject:        cfg.Broker.Subject,
		queue:          cfg.Broker.Queue,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}

// Subscribe joins the handler's queue group on nc. An empty queue
// subscribes without a group.
func (h *Handler) Subscribe(nc *nats.Conn) (*nats.Subscription, error) {
	sub, err := nc.QueueSubscribe(h.subject, h.queue, h.handleMsg)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", h.subject, err)
	}

	h.logger.Info().Str("subject", h.subject).Str("queue", h.queue).Msg("subscribed")
	return sub, nil
}

func (h *Handler) handleMsg(msg *nats.Msg) {
	traceID := msg.Header.Get(traceIDHeader)
	if traceID == "" {
		traceID = h.traceID.Generate()
	}

	log := h.logger.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID).Str("subject", msg.Subject)
	})

	if msg.Reply == "" {
		log.Warn().Msg("message without reply subject dropped")
		return
	}

	ctx := utils.WithTraceID(log.WithContext(context.Background()), traceID)
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	resp := h.handle(ctx, msg)

	data, err := json.Marshal(resp)
	if err != nil {
		log.Err(err).Msg("failed to encode response")
		return
	}

	reply := nats.NewMsg(msg.Reply)
	reply.Header.Set(traceIDHeader, traceID)
	reply.Data = data
	if err = msg.RespondMsg(reply); err != nil {
		log.Err(err).Msg("failed to respond")
		return
	}

	log.Info().
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Int("size", len(data)).
		Send()
}

// handle decodes the message and dispatches it. A message that cannot be
// decoded is answered with a 500 envelope carrying the decode error.
func (h *Handler) handle(ctx context.Context, msg *nats.Msg) *models.Response {
	var req models.Request
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		logger.FromContext(ctx).Err(err).Msg("invalid request message")
		return models.NewInternalServerError(err.Error())
	}

	if req.Token == "" {
		req.Token = headerToken(ctx, msg)
	}

	return h.dispatcher.HandleRequest(ctx, req)
}

func headerToken(ctx context.Context, msg *nats.Msg) string {
	header := msg.Header.Get(authorizationHeader)
	if header == "" {
		return ""
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("ignoring authorization header")
		return ""
	}
	return token
}
