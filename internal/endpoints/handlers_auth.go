package endpoints

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-api-dispatch/internal/app"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/store"
	"github.com/MKhiriev/go-api-dispatch/models"
)

func (h *handlers) register(ctx context.Context, payload models.Payload) (*models.Response, error) {
	var req credentials
	if resp := h.decode(payload, &req); resp != nil {
		return resp, nil
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req.Login, req.Password)
	if err != nil {
		return fail(err)
	}

	logger.FromContext(ctx).Info().Int64("id", user.UserID).Str("login", user.Login).Msg("user registered")
	return models.Created.WithData(map[string]any{"user": user})
}

func (h *handlers) login(ctx context.Context, payload models.Payload) (*models.Response, error) {
	var req credentials
	if resp := h.decode(payload, &req); resp != nil {
		return resp, nil
	}

	user, err := h.services.AuthService.Login(ctx, req.Login, req.Password)
	if err != nil {
		// unknown login and wrong password are indistinguishable to the caller
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.NewUnauthorized(app.MsgWrongLoginPassword), nil
		}
		return fail(err)
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		return nil, models.WithOrigin(err, 0)
	}

	return models.Success.WithData(map[string]any{
		"token": token.String(),
		"user":  user,
	})
}
