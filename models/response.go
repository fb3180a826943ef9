// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Reserved envelope field names. Extra fields must not use them.
const (
	FieldStatusCode  = "statusCode"
	FieldReason      = "reason"
	FieldDescription = "description"

	// FieldData is the key under which a non-map extra value is stored.
	FieldData = "data"
)

// Errors returned by [NewResponse] when the envelope invariants are violated.
var (
	ErrInvalidStatusCode = errors.New("response should have a positive status code")
	ErrEmptyReason       = errors.New("response should have a reason")
	ErrEmptyDescription  = errors.New("response should have a description")
	ErrReservedField     = errors.New("extra field collides with a reserved envelope field")
)

// Response is the uniform envelope every dispatch outcome is normalized into.
//
// A Response is immutable once constructed: its fields are unexported and
// [Response.Extra] returns a copy. Shared instances (see responses.go) can
// therefore be handed out to any number of concurrent callers.
//
// On the wire the envelope is a flat JSON object: statusCode, reason and
// description sit next to every extra field.
type Response struct {
	statusCode  int
	reason      string
	description string
	extra       map[string]any
}

// NewResponse constructs a validated envelope.
//
// extra is optional. A string-keyed map or a struct is merged into the
// envelope so that each of its keys (JSON field names for structs) becomes a
// top-level field. Any other value is stored under the single "data" field. Empty values (nil, "", 0, false, empty map) add
// nothing.
//
// Returns [ErrInvalidStatusCode], [ErrEmptyReason], [ErrEmptyDescription] or
// [ErrReservedField] when the corresponding invariant does not hold.
func NewResponse(statusCode int, reason, description string, extra ...any) (*Response, error) {
	if statusCode <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStatusCode, statusCode)
	}
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}

	r := &Response{
		statusCode:  statusCode,
		reason:      reason,
		description: description,
	}

	for _, e := range extra {
		fields, err := extraFields(e)
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		if r.extra == nil {
			r.extra = make(map[string]any, len(fields))
		}
		maps.Copy(r.extra, fields)
	}

	return r, nil
}

// MustResponse is like [NewResponse] but panics on invalid input.
// It is meant for package-level envelopes built from constant values.
func MustResponse(statusCode int, reason, description string, extra ...any) *Response {
	r, err := NewResponse(statusCode, reason, description, extra...)
	if err != nil {
		panic(err)
	}
	return r
}

// StatusCode returns the numeric status of the envelope.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Reason returns the short reason phrase (e.g. "Not Found").
func (r *Response) Reason() string {
	return r.reason
}

// Description returns the human-readable description.
func (r *Response) Description() string {
	return r.description
}

// Extra returns a copy of the extra top-level fields, or nil if there are none.
func (r *Response) Extra() map[string]any {
	if len(r.extra) == 0 {
		return nil
	}
	return maps.Clone(r.extra)
}

// Get returns a single extra field.
func (r *Response) Get(key string) (any, bool) {
	v, ok := r.extra[key]
	return v, ok
}

// WithData returns a new envelope with the same status, reason and
// description, and the receiver's extra fields merged with extra.
// The receiver is left untouched.
func (r *Response) WithData(extra any) (*Response, error) {
	return NewResponse(r.statusCode, r.reason, r.description, r.Extra(), extra)
}

// Equal reports whether two envelopes carry the same status, reason,
// description and extra fields.
func (r *Response) Equal(other *Response) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.statusCode == other.statusCode &&
		r.reason == other.reason &&
		r.description == other.description &&
		reflect.DeepEqual(r.Extra(), other.Extra())
}

// String implements [fmt.Stringer].
func (r *Response) String() string {
	return fmt.Sprintf("%d %s: %s", r.statusCode, r.reason, r.description)
}

// MarshalJSON writes the envelope as a single flat JSON object.
func (r *Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+3)
	maps.Copy(out, r.extra)
	out[FieldStatusCode] = r.statusCode
	out[FieldReason] = r.reason
	out[FieldDescription] = r.description

	return json.Marshal(out)
}

// UnmarshalJSON reads a flat JSON envelope. Every field other than
// statusCode, reason and description becomes an extra field. The decoded
// envelope is validated with the same rules as [NewResponse].
func (r *Response) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("error decoding response envelope: %w", err)
	}

	var (
		statusCode          int
		reason, description string
	)
	if err := unmarshalField(raw, FieldStatusCode, &statusCode); err != nil {
		return err
	}
	if err := unmarshalField(raw, FieldReason, &reason); err != nil {
		return err
	}
	if err := unmarshalField(raw, FieldDescription, &description); err != nil {
		return err
	}

	extra := make(map[string]any, len(raw))
	for k, v := range raw {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("error decoding envelope field %q: %w", k, err)
		}
		extra[k] = value
	}

	decoded, err := NewResponse(statusCode, reason, description, extra)
	if err != nil {
		return err
	}

	*r = *decoded
	return nil
}

// unmarshalField decodes and removes a reserved field from raw.
func unmarshalField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)

	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("error decoding envelope field %q: %w", key, err)
	}
	return nil
}

// extraFields converts a single extra argument into top-level fields.
func extraFields(extra any) (map[string]any, error) {
	if isEmptyExtra(extra) {
		return nil, nil
	}

	var fields map[string]any
	switch e := extra.(type) {
	case map[string]any:
		fields = e
	case Payload:
		fields = e
	default:
		v := reflect.ValueOf(extra)
		switch {
		case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
			fields = make(map[string]any, v.Len())
			iter := v.MapRange()
			for iter.Next() {
				fields[iter.Key().String()] = iter.Value().Interface()
			}
		case reflect.Indirect(v).Kind() == reflect.Struct:
			object, err := structFields(extra)
			if err != nil {
				return nil, err
			}
			if object == nil {
				return map[string]any{FieldData: extra}, nil
			}
			fields = object
		default:
			return map[string]any{FieldData: extra}, nil
		}
	}

	for _, reserved := range []string{FieldStatusCode, FieldReason, FieldDescription} {
		if _, ok := fields[reserved]; ok {
			return nil, fmt.Errorf("%w: %q", ErrReservedField, reserved)
		}
	}

	out := make(map[string]any, len(fields))
	for k, v := range fields {
		// slices are copied so the envelope never aliases caller-owned storage
		if s, ok := v.([]string); ok {
			v = slices.Clone(s)
		}
		out[k] = v
	}

	return out, nil
}

// structFields returns the fields of a struct extra keyed by their JSON names.
// It returns nil when the struct does not encode to a JSON object, as with
// time.Time.
func structFields(extra any) (map[string]any, error) {
	b, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("error encoding extra %T: %w", extra, err)
	}
	if len(b) == 0 || b[0] != '{' {
		return nil, nil
	}

	var fields map[string]any
	if err = json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("error decoding extra %T: %w", extra, err)
	}
	return fields, nil
}

// isEmptyExtra reports whether extra should be ignored entirely.
func isEmptyExtra(extra any) bool {
	if extra == nil {
		return true
	}

	v := reflect.ValueOf(extra)
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.IsZero()
	case reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}

	return false
}
