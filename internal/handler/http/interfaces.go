package http

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/models"
)

// RequestDispatcher evaluates a transport-independent request.
type RequestDispatcher interface {
	HandleRequest(ctx context.Context, req models.Request) *models.Response
}
