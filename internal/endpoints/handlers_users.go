package endpoints

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/internal/app"
	"github.com/MKhiriev/go-api-dispatch/models"
)

func (h *handlers) me(_ context.Context, payload models.Payload) (*models.Response, error) {
	identity, ok := payload.LoggedUser()
	if !ok {
		return models.NewUnauthorized(app.MsgInvalidToken), nil
	}

	return models.Success.WithData(map[string]any{"user": identity})
}

func (h *handlers) listUsers(ctx context.Context, _ models.Payload) (*models.Response, error) {
	users, err := h.services.UserService.ListUsers(ctx)
	if err != nil {
		return fail(err)
	}

	return models.Success.WithData(map[string]any{"users": users})
}

func (h *handlers) setRole(ctx context.Context, payload models.Payload) (*models.Response, error) {
	var req setRoleRequest
	if resp := h.decode(payload, &req); resp != nil {
		return resp, nil
	}

	user, err := h.services.UserService.SetRole(ctx, req.Login, req.Role)
	if err != nil {
		return fail(err)
	}

	return models.Success.WithData(map[string]any{"user": user})
}

func (h *handlers) disable(ctx context.Context, payload models.Payload) (*models.Response, error) {
	var req disableRequest
	if resp := h.decode(payload, &req); resp != nil {
		return resp, nil
	}

	// admins cannot disable themselves
	if identity, ok := payload.LoggedUser(); ok && identity.Login == req.Login && *req.Disabled {
		return models.NewBadRequest(app.MsgCannotDisableSelf), nil
	}

	user, err := h.services.UserService.SetDisabled(ctx, req.Login, *req.Disabled)
	if err != nil {
		return fail(err)
	}

	return models.Success.WithData(map[string]any{"user": user})
}
