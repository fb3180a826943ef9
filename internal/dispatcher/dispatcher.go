// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatcher

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/MKhiriev/go-api-dispatch/internal/app"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// Dispatcher routes requests to the handlers of a fixed endpoint registry.
//
// A Dispatcher holds no mutable state once constructed and is safe for
// concurrent use by any number of transports.
type Dispatcher struct {
	endpoints     models.Endpoints
	authenticator Authenticator

	notImplemented bool
	observer       Observer

	logger *logger.Logger
}

// New constructs a [Dispatcher] over a copy of endpoints.
//
// Returns [ErrNoEndpoints] when endpoints is nil and [ErrNoAuthenticator]
// when an endpoint requires authentication but authenticator is nil.
func New(endpoints models.Endpoints, authenticator Authenticator, log *logger.Logger, opts ...Option) (*Dispatcher, error) {
	if log == nil {
		log = logger.Nop()
	}

	if endpoints == nil {
		return nil, ErrNoEndpoints
	}

	if authenticator == nil {
		for name, e := range endpoints {
			if e.AuthRequired {
				log.Error().Str("endpoint", name).Msg("endpoint requires auth but no authenticator given")
				return nil, ErrNoAuthenticator
			}
		}
	}

	d := &Dispatcher{
		endpoints:     maps.Clone(endpoints),
		authenticator: authenticator,
		logger:        log,
	}
	for _, opt := range opts {
		opt(d)
	}

	log.Info().Int("endpoints", len(d.endpoints)).Msg("dispatcher created")
	return d, nil
}

// HandleRequest evaluates req against the registry and returns the
// resulting envelope. It never returns nil and never panics: handler errors
// and panics are converted into 500 envelopes.
//
// The decision sequence is:
//  1. missing method or endpoint: [models.BadRequest];
//  2. unknown endpoint: [models.NotFound];
//  3. method mismatch (exact, case-sensitive): [models.MethodNotAllowed];
//  4. endpoint without handler: [models.NotFound] or [models.NotImplemented];
//  5. authentication and role check for endpoints that require auth;
//  6. the handler's envelope, returned verbatim.
func (d *Dispatcher) HandleRequest(ctx context.Context, req models.Request) (resp *models.Response) {
	start := time.Now()
	var role string

	defer func() {
		if v := recover(); v != nil {
			resp = panicFault(v)
			logger.FromContext(ctx).Error().
				Str("endpoint", req.Endpoint).
				Str("method", req.Method).
				Any("panic", v).
				Msg("handler panicked")
		}
		d.safeObserve(ctx, req, role, resp, time.Since(start))
	}()

	resp, role = d.dispatch(ctx, req)
	return resp
}

func (d *Dispatcher) dispatch(ctx context.Context, req models.Request) (*models.Response, string) {
	log := logger.FromContext(ctx)

	if req.Method == "" || req.Endpoint == "" {
		log.Debug().Msg("request without method or endpoint")
		return models.BadRequest, ""
	}

	entry, ok := d.endpoints[req.Endpoint]
	if !ok {
		log.Debug().Str("endpoint", req.Endpoint).Msg("endpoint is not registered")
		return models.NotFound, ""
	}

	if entry.Method != req.Method {
		log.Debug().
			Str("endpoint", req.Endpoint).
			Str("method", req.Method).
			Str("expected", entry.Method).
			Msg("method is not allowed")
		return models.MethodNotAllowed, ""
	}

	if entry.Handler == nil {
		log.Debug().Str("endpoint", req.Endpoint).Msg("endpoint has no handler")
		if d.notImplemented {
			return models.NotImplemented, ""
		}
		return models.NotFound, ""
	}

	payload := req.Data
	var role string

	if entry.AuthRequired {
		result := d.authenticator.Authenticate(ctx, req.Token)

		switch result.Status() {
		case models.AuthAllowed:
			identity := result.Identity()
			role = identity.Role

			if !entry.Allows(identity.Role) {
				log.Debug().
					Str("endpoint", req.Endpoint).
					Str("role", identity.Role).
					Strs("allowed", entry.Roles).
					Msg("role not allowed")
				return models.NewForbidden(app.MsgRoleNotAllowed, map[string]any{
					"allowedRoles": entry.Roles,
					"role":         identity.Role,
				}), role
			}

			payload = req.WithLoggedUser(identity)

		case models.AuthDenied:
			log.Debug().Str("endpoint", req.Endpoint).Str("reason", result.Reason()).Msg("authentication denied")
			return models.NewUnauthorized(result.Reason(), "none"), ""

		default:
			log.Debug().Str("endpoint", req.Endpoint).Msg("invalid token")
			return models.NewUnauthorized(app.MsgInvalidToken), ""
		}
	}

	resp, err := entry.Handler(ctx, payload)
	if err != nil {
		log.Err(err).Str("endpoint", req.Endpoint).Msg("handler failed")
		return errorFault(err, entry.Handler), role
	}
	if resp == nil {
		return models.NoContent, role
	}

	return resp, role
}

// safeObserve runs observe without letting a panicking observer escape
// HandleRequest.
func (d *Dispatcher) safeObserve(ctx context.Context, req models.Request, role string, resp *models.Response, elapsed time.Duration) {
	defer func() {
		if v := recover(); v != nil {
			d.logger.Error().
				Str("endpoint", req.Endpoint).
				Any("panic", v).
				Msg("dispatch observer panicked")
		}
	}()

	d.observe(ctx, req, role, resp, elapsed)
}

func (d *Dispatcher) observe(ctx context.Context, req models.Request, role string, resp *models.Response, elapsed time.Duration) {
	event := d.logger.Debug()
	if resp.StatusCode() >= http.StatusInternalServerError {
		event = d.logger.Warn()
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		event = event.Str("trace_id", traceID)
	}
	event.
		Str("endpoint", req.Endpoint).
		Str("method", req.Method).
		Int("status", resp.StatusCode()).
		Dur("duration", elapsed).
		Msg("request dispatched")

	if d.observer == nil {
		return
	}

	endpoint := req.Endpoint
	if _, ok := d.endpoints[endpoint]; !ok {
		endpoint = ""
	}
	d.observer.ObserveDispatch(endpoint, req.Method, role, resp.StatusCode(), elapsed)
}
