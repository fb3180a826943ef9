package http

import (
	"time"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/metrics"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
)

type Handler struct {
	dispatcher RequestDispatcher
	collector  *metrics.Collector

	// hasher is nil when integrity checks are off.
	hasher  *utils.Hasher
	traceID *utils.UUIDGenerator

	requestTimeout time.Duration
	alwaysOK       bool

	logger *logger.Logger
}

// NewHandler builds the HTTP transport. collector may be nil, in which case
// /metrics is not served.
func NewHandler(dispatcher RequestDispatcher, collector *metrics.Collector, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		dispatcher:     dispatcher,
		collector:      collector,
		traceID:        utils.NewUUIDGenerator(),
		requestTimeout: cfg.Server.RequestTimeout,
		alwaysOK:       cfg.Server.AlwaysOK,
		logger:         logger,
	}
	if cfg.App.HashKey != "" {
		h.hasher = utils.NewHasher(cfg.App.HashKey)
	}

	logger.Info().
		Bool("always_ok", h.alwaysOK).
		Bool("integrity_check", h.hasher != nil).
		Msg("http handler created")
	return h
}
