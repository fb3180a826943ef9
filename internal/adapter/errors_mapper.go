package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-api-dispatch/models"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusNotImplemented:      ErrNotImplemented,
	http.StatusBadGateway:          ErrBadGateway,
}

// mapHTTPError converts a non-2xx status whose body is not an envelope
// (a proxy page, a truncated reply) into an error.
func mapHTTPError(statusCode int, rawBody []byte) error {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(rawBody))
	if body == "" {
		body = http.StatusText(statusCode)
	}

	if err, ok := statusErrors[statusCode]; ok {
		return fmt.Errorf("%w: %s", err, body)
	}
	return fmt.Errorf("http %d: %s", statusCode, body)
}

// EnvelopeError returns nil for 2xx envelopes and otherwise an error
// matching one of the package's sentinel values. The description of the
// envelope becomes the error text.
func EnvelopeError(resp *models.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	if err, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: %s", err, resp.Description())
	}
	return fmt.Errorf("status %d: %s", code, resp.Description())
}
