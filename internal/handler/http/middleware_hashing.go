package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-api-dispatch/internal/app"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const hashHeader = "HashSHA256"

// withHashing verifies the HMAC-SHA256 of request bodies that carry a
// HashSHA256 header and signs every response body with the same header.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if signature := r.Header.Get(hashHeader); signature != "" {
			// read bytes from body
			body, err := io.ReadAll(r.Body)
			if err != nil {
				log.Err(err).Str("func", "*Handler.withHashing").Msg("failed to read request body")
				writeEnvelope(w, models.NewInternalServerError(err.Error()))
				return
			}
			// restore request body
			r.Body = io.NopCloser(bytes.NewReader(body))

			if !h.hasher.Verify(body, signature) {
				log.Error().Str("func", "*Handler.withHashing").
					Str("hash from request", signature).
					Str("hashed body", h.hasher.HashHex(body)).
					Msg("hashes are not equal")
				writeSigned(w, h.hasher, models.NewBadRequest(app.MsgIntegrityCheckFailed))
				return
			}

			log.Debug().Str("func", "*Handler.withHashing").Msg("hashes are equal")
		}

		sw := &signingResponseWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		sw.flush(h.hasher)
	})
}

// signingResponseWriter buffers the response so the signature header can
// be set before anything reaches the client.
type signingResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *signingResponseWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *signingResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *signingResponseWriter) flush(hasher *utils.Hasher) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.body.Len() > 0 {
		w.Header().Set(hashHeader, hasher.HashHex(w.body.Bytes()))
	}
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() > 0 {
		w.ResponseWriter.Write(w.body.Bytes())
	}
}

func writeSigned(w http.ResponseWriter, hasher *utils.Hasher, resp *models.Response) {
	sw := &signingResponseWriter{ResponseWriter: w}
	writeEnvelope(sw, resp)
	sw.flush(hasher)
}

// writeEnvelope writes resp with its own status, for middleware that answer
// before the adapters run.
func writeEnvelope(w http.ResponseWriter, resp *models.Response) {
	utils.WriteEnvelope(w, resp, resp.StatusCode())
}
