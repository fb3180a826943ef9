package endpoints

import (
	"errors"

	"github.com/MKhiriev/go-api-dispatch/internal/app"
	"github.com/MKhiriev/go-api-dispatch/internal/service"
	"github.com/MKhiriev/go-api-dispatch/internal/store"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// errorResponses is checked in order; the first match wins.
var errorResponses = []struct {
	target  error
	respond func(description string) *models.Response
}{
	{service.ErrInvalidDataProvided, func(d string) *models.Response { return models.NewBadRequest(d) }},
	{service.ErrUnknownRole, func(d string) *models.Response { return models.NewBadRequest(d) }},
	{service.ErrHashingPassword, func(d string) *models.Response { return models.NewBadRequest(d) }},
	{service.ErrWrongPassword, func(string) *models.Response { return models.NewUnauthorized(app.MsgWrongLoginPassword) }},
	{service.ErrTokenIsExpired, func(d string) *models.Response { return models.NewUnauthorized(d) }},
	{service.ErrTokenIsExpiredOrInvalid, func(d string) *models.Response { return models.NewUnauthorized(d) }},
	{service.ErrUserIsDisabled, func(d string) *models.Response { return models.NewForbidden(d) }},

	{store.ErrLoginAlreadyExists, func(d string) *models.Response { return models.NewConflict(d) }},
	{store.ErrNoUserWasFound, func(d string) *models.Response { return models.NewNotFound(d) }},
}

// responseFromError maps a well-known domain error to its envelope. It
// reports false for errors that should surface as 500.
func responseFromError(err error) (*models.Response, bool) {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.respond(e.target.Error()), true
		}
	}
	return nil, false
}

// fail returns the envelope for err if it is a known domain error and err
// itself otherwise, annotated with the location of the calling handler.
func fail(err error) (*models.Response, error) {
	if resp, ok := responseFromError(err); ok {
		return resp, nil
	}
	return nil, models.WithOrigin(err, 1)
}
