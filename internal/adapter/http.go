package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const (
	apiPath    = "/api"
	hashHeader = "HashSHA256"
)

type httpDispatchClient struct {
	client *utils.HTTPClient

	// hasher is nil when request signing is off.
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPDispatchClient constructs an HTTP implementation of
// [DispatchClient] for the server at cfg.Address. When cfg.HashKey is set,
// POST bodies are signed and signed responses are verified.
//
// Returns [ErrInvalidAddress] if cfg.Address cannot be turned into a URL.
func NewHTTPDispatchClient(cfg config.ClientConfig, logger *logger.Logger) (DispatchClient, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	c := &httpDispatchClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	if cfg.HashKey != "" {
		c.hasher = utils.NewHasher(cfg.HashKey)
	}
	c.SetToken(cfg.Token)

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [DispatchClient].
func (h *httpDispatchClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [DispatchClient].
func (h *httpDispatchClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Get implements [DispatchClient] with GET /api?endpoint=...&data=...
func (h *httpDispatchClient) Get(ctx context.Context, endpoint string, data models.Payload) (*models.Response, error) {
	req := h.request(ctx).SetQueryParam("endpoint", endpoint)

	if len(data) > 0 {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode data: %w", err)
		}
		req.SetQueryParam("data", string(encoded))
	}

	resp, err := req.Get(apiPath)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	return h.decode(resp)
}

// Post implements [DispatchClient] with POST /api {"endpoint":...,"data":...}
func (h *httpDispatchClient) Post(ctx context.Context, endpoint string, data models.Payload) (*models.Response, error) {
	body, err := json.Marshal(models.Request{Endpoint: endpoint, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hasher != nil {
		req.SetHeader(hashHeader, h.hasher.HashHex(body))
	}

	resp, err := req.Post(apiPath)
	if err != nil {
		return nil, fmt.Errorf("post request: %w", err)
	}

	return h.decode(resp)
}

// Close implements [DispatchClient].
func (h *httpDispatchClient) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}

func (h *httpDispatchClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// decode turns a server reply into an envelope. Replies that are not
// envelopes are mapped to errors by status.
func (h *httpDispatchClient) decode(resp *resty.Response) (*models.Response, error) {
	body := resp.Body()

	if resp.StatusCode() == http.StatusNoContent && len(bytes.TrimSpace(body)) == 0 {
		return models.NoContent, nil
	}

	if h.hasher != nil {
		if signature := resp.Header().Get(hashHeader); signature != "" && !h.hasher.Verify(body, signature) {
			h.logger.Error().Str("func", "*httpDispatchClient.decode").Msg("response signature mismatch")
			return nil, ErrIntegrityCheckFailed
		}
	}

	var envelope models.Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		if mapped := mapHTTPError(resp.StatusCode(), body); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}

	return &envelope, nil
}
