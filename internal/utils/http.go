package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-api-dispatch/models"
)

// encodeFailure is the envelope sent when a response cannot be encoded.
var encodeFailure = models.NewInternalServerError("error encoding response envelope")

// WriteEnvelope writes resp as the JSON body of an HTTP response with the
// given status. A 204 status is written without a body.
//
// If resp cannot be encoded a 500 envelope is written in its place and the
// encoding error is returned.
func WriteEnvelope(w http.ResponseWriter, resp *models.Response, statusCode int) (int, error) {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return 0, nil
	}

	body, err := json.Marshal(resp)
	if err != nil {
		fallback, _ := json.Marshal(encodeFailure)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(fallback)
		return 0, fmt.Errorf("error encoding response envelope: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
