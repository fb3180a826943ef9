package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/metrics"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// ---- Helpers ----

// recordingDispatcher remembers every request and answers with resp
// (models.Success when nil).
type recordingDispatcher struct {
	mu        sync.Mutex
	requests  []models.Request
	deadlines []bool
	resp      *models.Response
}

func (d *recordingDispatcher) HandleRequest(ctx context.Context, req models.Request) *models.Response {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, hasDeadline := ctx.Deadline()
	d.requests = append(d.requests, req)
	d.deadlines = append(d.deadlines, hasDeadline)

	if d.resp == nil {
		return models.Success
	}
	return d.resp
}

func (d *recordingDispatcher) calls() []models.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Request(nil), d.requests...)
}

type testOption func(cfg *config.StructuredConfig)

func withAlwaysOK() testOption {
	return func(cfg *config.StructuredConfig) { cfg.Server.AlwaysOK = true }
}

func withHashKey(key string) testOption {
	return func(cfg *config.StructuredConfig) { cfg.App.HashKey = key }
}

func withTimeout(d time.Duration) testOption {
	return func(cfg *config.StructuredConfig) { cfg.Server.RequestTimeout = d }
}

func newTestRouter(d RequestDispatcher, collector *metrics.Collector, opts ...testOption) http.Handler {
	cfg := config.StructuredConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewHandler(d, collector, cfg, logger.Nop()).Init()
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, body []byte) *models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(body, &resp), "body: %s", body)
	return &resp
}
