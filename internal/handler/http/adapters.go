package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// bodyRequest is the JSON body accepted by POST /api. The method is implied
// by the HTTP verb.
type bodyRequest struct {
	Endpoint string         `json:"endpoint"`
	Token    string         `json:"token"`
	Data     models.Payload `json:"data"`
}

// get is the query-style adapter: GET /api?endpoint=...&token=...&data={...}
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	query := r.URL.Query()

	req := models.Request{
		Method:   http.MethodGet,
		Endpoint: query.Get("endpoint"),
		Token:    query.Get("token"),
	}

	if data := query.Get("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &req.Data); err != nil {
			log.Err(err).Msg("invalid data query parameter")
			h.writeResponse(w, r, models.NewInternalServerError(err.Error()))
			return
		}
	}

	h.dispatch(w, r, req)
}

// post is the body-style adapter: POST /api {"endpoint":...,"token":...,"data":{...}}
func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body *bodyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeResponse(w, r, models.NewInternalServerError(err.Error()))
		return
	}
	if body == nil {
		log.Error().Msg("null JSON body was passed")
		h.writeResponse(w, r, models.NewInternalServerError(errBodyIsNotObject.Error()))
		return
	}

	h.dispatch(w, r, models.Request{
		Method:   http.MethodPost,
		Endpoint: body.Endpoint,
		Token:    body.Token,
		Data:     body.Data,
	})
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, req models.Request) {
	if req.Token == "" {
		req.Token = bearerToken(r)
	}

	resp := h.dispatcher.HandleRequest(r.Context(), req)
	h.writeResponse(w, r, resp)
}

// bearerToken returns the token of a well-formed Authorization header, or "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("ignoring authorization header")
		return ""
	}
	return token
}

// writeResponse writes resp as JSON. The HTTP status mirrors the envelope
// unless the handler runs in always-OK mode; a 204 carries no body unless
// always-OK is on.
func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, resp *models.Response) {
	status := resp.StatusCode()
	if h.alwaysOK {
		status = http.StatusOK
	}

	if _, err := utils.WriteEnvelope(w, resp, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
