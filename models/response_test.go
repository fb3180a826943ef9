// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse_Validation_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		reason      string
		description string
		wantErr     error
	}{
		{
			name:        "valid envelope",
			statusCode:  200,
			reason:      "Success",
			description: "ok",
		},
		{
			name:        "status code omitted",
			reason:      "Success",
			description: "ok",
			wantErr:     ErrInvalidStatusCode,
		},
		{
			name:        "negative status code",
			statusCode:  -1,
			reason:      "Success",
			description: "ok",
			wantErr:     ErrInvalidStatusCode,
		},
		{
			name:        "empty reason",
			statusCode:  200,
			description: "ok",
			wantErr:     ErrEmptyReason,
		},
		{
			name:       "empty description",
			statusCode: 200,
			reason:     "Success",
			wantErr:    ErrEmptyDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResponse(tt.statusCode, tt.reason, tt.description)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.statusCode, r.StatusCode())
			assert.Equal(t, tt.reason, r.Reason())
			assert.Equal(t, tt.description, r.Description())
			assert.Nil(t, r.Extra())
		})
	}
}

func TestNewResponse_ObjectExtraIsFlattened(t *testing.T) {
	r, err := NewResponse(200, "Success", "ok", map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"x": 1, "y": 2}, r.Extra())
	_, hasData := r.Get(FieldData)
	assert.False(t, hasData)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"reason":"Success","description":"ok","x":1,"y":2}`, string(raw))
}

func TestNewResponse_ScalarExtraIsWrapped(t *testing.T) {
	r, err := NewResponse(200, "Success", "ok", "abc")
	require.NoError(t, err)

	data, ok := r.Get(FieldData)
	require.True(t, ok)
	assert.Equal(t, "abc", data)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"reason":"Success","description":"ok","data":"abc"}`, string(raw))
}

func TestNewResponse_EmptyExtrasAreIgnored(t *testing.T) {
	for _, extra := range []any{nil, "", 0, false, map[string]any{}} {
		r, err := NewResponse(200, "Success", "ok", extra)
		require.NoError(t, err)
		assert.Nil(t, r.Extra(), "extra %#v should be ignored", extra)
	}
}

func TestNewResponse_TypedMapAndStructExtras(t *testing.T) {
	r, err := NewResponse(200, "Success", "ok", map[string]string{"token": "abc"})
	require.NoError(t, err)
	v, ok := r.Get("token")
	require.True(t, ok)
	assert.Equal(t, "abc", v)

}

func TestNewResponse_StructExtrasFlatten(t *testing.T) {
	type point struct {
		X      int    `json:"x"`
		Y      int    `json:"y"`
		Label  string `json:"label,omitempty"`
		Hidden string `json:"-"`
	}

	tests := []struct {
		name  string
		extra any
	}{
		{name: "struct", extra: point{X: 1, Y: 2, Hidden: "h"}},
		{name: "pointer to struct", extra: &point{X: 1, Y: 2, Hidden: "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResponse(200, "Success", "ok", tt.extra)
			require.NoError(t, err)

			assert.Equal(t, map[string]any{"x": 1.0, "y": 2.0}, r.Extra())

			b, err := json.Marshal(r)
			require.NoError(t, err)
			assert.JSONEq(t, `{"statusCode":200,"reason":"Success","description":"ok","x":1,"y":2}`, string(b))
		})
	}
}

func TestNewResponse_StructWithReservedFieldRejected(t *testing.T) {
	type bad struct {
		Reason string `json:"reason"`
	}

	_, err := NewResponse(200, "Success", "ok", bad{Reason: "x"})
	assert.ErrorIs(t, err, ErrReservedField)
}

func TestNewResponse_NonObjectStructIsWrapped(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	r, err := NewResponse(200, "Success", "ok", at)
	require.NoError(t, err)

	v, ok := r.Get(FieldData)
	require.True(t, ok)
	assert.Equal(t, at, v)
}

func TestNewResponse_ReservedFieldRejected(t *testing.T) {
	_, err := NewResponse(200, "Success", "ok", map[string]any{"statusCode": 500})
	assert.ErrorIs(t, err, ErrReservedField)
}

func TestResponse_ExtraIsACopy(t *testing.T) {
	roles := []string{"admin"}
	r, err := NewResponse(403, "Forbidden", "Role not allowed", map[string]any{"allowedRoles": roles})
	require.NoError(t, err)

	roles[0] = "mutated"
	extra := r.Extra()
	extra["allowedRoles"] = "mutated"

	v, _ := r.Get("allowedRoles")
	assert.Equal(t, []string{"admin"}, v)
}

func TestResponse_WithDataReturnsNewValue(t *testing.T) {
	base, err := NewResponse(200, "Success", "ok", map[string]any{"a": 1})
	require.NoError(t, err)

	next, err := base.WithData(map[string]any{"b": 2})
	require.NoError(t, err)

	assert.NotSame(t, base, next)
	assert.Equal(t, map[string]any{"a": 1}, base.Extra())
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, next.Extra())
}

func TestResponse_UnmarshalJSON(t *testing.T) {
	var r Response
	err := json.Unmarshal([]byte(`{"statusCode":403,"reason":"Forbidden","description":"Role not allowed","role":"user","allowedRoles":["admin"]}`), &r)
	require.NoError(t, err)

	assert.Equal(t, 403, r.StatusCode())
	assert.Equal(t, "Forbidden", r.Reason())
	assert.Equal(t, "Role not allowed", r.Description())
	assert.Equal(t, map[string]any{"role": "user", "allowedRoles": []any{"admin"}}, r.Extra())
}

func TestResponse_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "missing status", body: `{"reason":"Success","description":"ok"}`},
		{name: "string status", body: `{"statusCode":"200","reason":"Success","description":"ok"}`},
		{name: "missing description", body: `{"statusCode":200,"reason":"Success"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Response
			assert.Error(t, json.Unmarshal([]byte(tt.body), &r))
		})
	}
}

func TestResponse_Equal(t *testing.T) {
	a := MustResponse(401, "Unauthorized", "Invalid token")
	b := MustResponse(401, "Unauthorized", "Invalid token")
	c := MustResponse(401, "Unauthorized", "x", "none")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestMustResponse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustResponse(0, "", "") })
}
