// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	myHTTP "github.com/MKhiriev/go-api-dispatch/internal/handler/http"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

const testHashKey = "testhashkey"

// newTestClient creates an httpDispatchClient pointed at the test server.
func newTestClient(t *testing.T, serverURL, hashKey string) *httpDispatchClient {
	t.Helper()

	c, err := NewHTTPDispatchClient(config.ClientConfig{
		Address:        serverURL,
		RequestTimeout: 5 * time.Second,
		HashKey:        hashKey,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c.(*httpDispatchClient)
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, resp *models.Response) {
	t.Helper()
	_, err := utils.WriteEnvelope(w, resp, resp.StatusCode())
	require.NoError(t, err)
}

// ── Constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPDispatchClient_InvalidAddress(t *testing.T) {
	for _, address := range []string{"", "   ", "http://"} {
		_, err := NewHTTPDispatchClient(config.ClientConfig{Address: address}, logger.Nop())
		assert.ErrorIs(t, err, ErrInvalidAddress, "address %q", address)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{raw: " https://example.com ", want: "https://example.com"},
	}

	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestGet_SendsQueryAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "users.me", r.URL.Query().Get("endpoint"))
		assert.JSONEq(t, `{"verbose":true}`, r.URL.Query().Get("data"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		resp, err := models.Success.WithData(map[string]any{"user": "alice"})
		require.NoError(t, err)
		writeEnvelope(t, w, resp)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	c.SetToken(" tok ")

	resp, err := c.Get(context.Background(), "users.me", models.Payload{"verbose": true})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	user, _ := resp.Get("user")
	assert.Equal(t, "alice", user)
	assert.Equal(t, "tok", c.Token())
}

func TestGet_WithoutDataOrToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("data"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(t, w, models.Success)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "").Get(context.Background(), "app.version", nil)

	require.NoError(t, err)
}

func TestGet_ErrorEnvelopeIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, models.NewForbidden("Role not allowed"))
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL, "").Get(context.Background(), "users.list", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.ErrorIs(t, EnvelopeError(resp), ErrForbidden)
}

func TestGet_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL, "").Get(context.Background(), "x", nil)

	require.NoError(t, err)
	assert.Same(t, models.NoContent, resp)
}

func TestGet_NonEnvelopeReplies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "bad gateway page", status: http.StatusBadGateway, body: "<html>bad gateway</html>", wantErr: ErrBadGateway},
		{name: "plain 500", status: http.StatusInternalServerError, body: "oops", wantErr: ErrInternalServerError},
		{name: "plain 409", status: http.StatusConflict, body: "", wantErr: ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL, "").Get(context.Background(), "x", nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGet_GarbageWith200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "").Get(context.Background(), "x", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response envelope")
}

func TestGet_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url, "").Get(context.Background(), "x", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "get request")
}

// ── Post ────────────────────────────────────────────────────────────────────

func TestPost_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get(hashHeader))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "auth.login", body["endpoint"])
		assert.Equal(t, map[string]any{"login": "alice", "password": "secret1"}, body["data"])
		assert.NotContains(t, body, "token")

		writeEnvelope(t, w, models.Success)
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL, "").Post(context.Background(), "auth.login",
		models.Payload{"login": "alice", "password": "secret1"})

	require.NoError(t, err)
	assert.True(t, models.Success.Equal(resp))
}

func TestPost_SignsBody(t *testing.T) {
	hasher := utils.NewHasher(testHashKey)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.True(t, hasher.Verify(body, r.Header.Get(hashHeader)))
		writeEnvelope(t, w, models.Created)
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL, testHashKey).Post(context.Background(), "auth.register", models.Payload{"login": "a"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())
}

func TestPost_RejectsForgedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(hashHeader, "00ff")
		writeEnvelope(t, w, models.Success)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, testHashKey).Post(context.Background(), "x", nil)

	assert.ErrorIs(t, err, ErrIntegrityCheckFailed)
}

// ── Against the real HTTP transport ─────────────────────────────────────────

type echoDispatcher struct{}

func (echoDispatcher) HandleRequest(_ context.Context, req models.Request) *models.Response {
	resp, _ := models.Success.WithData(map[string]any{
		"method":   req.Method,
		"endpoint": req.Endpoint,
		"token":    req.Token,
		"data":     req.Data,
	})
	return resp
}

func TestHTTPDispatchClient_AgainstTransport(t *testing.T) {
	cfg := config.StructuredConfig{App: config.App{HashKey: testHashKey}}
	router := myHTTP.NewHandler(echoDispatcher{}, nil, cfg, logger.Nop()).Init()
	srv := httptest.NewServer(router)
	defer srv.Close()

	c := newTestClient(t, srv.URL, testHashKey)
	c.SetToken("jwt")

	for _, call := range []struct {
		method string
		do     func() (*models.Response, error)
	}{
		{http.MethodGet, func() (*models.Response, error) {
			return c.Get(context.Background(), "users.me", models.Payload{"n": 1})
		}},
		{http.MethodPost, func() (*models.Response, error) {
			return c.Post(context.Background(), "users.me", models.Payload{"n": 1})
		}},
	} {
		resp, err := call.do()
		require.NoError(t, err, call.method)

		method, _ := resp.Get("method")
		token, _ := resp.Get("token")
		data, _ := resp.Get("data")
		assert.Equal(t, call.method, method)
		assert.Equal(t, "jwt", token)
		assert.Equal(t, map[string]any{"n": float64(1)}, data)
	}
}

// ── EnvelopeError ───────────────────────────────────────────────────────────

func TestEnvelopeError(t *testing.T) {
	tests := []struct {
		resp    *models.Response
		wantErr error
	}{
		{resp: models.Success},
		{resp: models.NoContent},
		{resp: models.BadRequest, wantErr: ErrBadRequest},
		{resp: models.Unauthorized, wantErr: ErrUnauthorized},
		{resp: models.NotFound, wantErr: ErrNotFound},
		{resp: models.MethodNotAllowed, wantErr: ErrMethodNotAllowed},
		{resp: models.NewConflict("Login already exists"), wantErr: ErrConflict},
		{resp: models.NotImplemented, wantErr: ErrNotImplemented},
	}

	for _, tt := range tests {
		err := EnvelopeError(tt.resp)
		if tt.wantErr == nil {
			assert.NoError(t, err, tt.resp.String())
			continue
		}
		assert.ErrorIs(t, err, tt.wantErr, tt.resp.String())
		assert.Contains(t, err.Error(), tt.resp.Description())
	}
}

func TestEnvelopeError_UnknownStatus(t *testing.T) {
	resp := models.MustResponse(http.StatusTeapot, "Teapot", "short and stout")

	err := EnvelopeError(resp)

	require.Error(t, err)
	assert.Equal(t, "status 418: short and stout", err.Error())
}
