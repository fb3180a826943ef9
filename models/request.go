// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "maps"

// LoggedUserKey is the payload key under which the dispatcher injects the
// authenticated [Identity] before invoking a handler.
const LoggedUserKey = "loggedUser"

// Payload is the free-form body of a dispatched request.
type Payload map[string]any

// Request is the transport-independent request handed to the dispatcher by
// every inbound adapter.
type Request struct {
	// Method is the verb claimed by the caller ("GET", "POST", ...).
	Method string `json:"method"`

	// Endpoint is the name of the target endpoint.
	Endpoint string `json:"endpoint"`

	// Token is an optional opaque credential.
	Token string `json:"token,omitempty"`

	// Data is the optional request payload.
	Data Payload `json:"data,omitempty"`
}

// LoggedUser returns the identity injected by the dispatcher, if any.
func (p Payload) LoggedUser() (Identity, bool) {
	id, ok := p[LoggedUserKey].(Identity)
	return id, ok
}

// withLoggedUser returns a copy of p that carries identity under
// [LoggedUserKey]. Other fields are preserved.
func (p Payload) withLoggedUser(identity Identity) Payload {
	out := make(Payload, len(p)+1)
	maps.Copy(out, p)
	out[LoggedUserKey] = identity
	return out
}

// WithLoggedUser returns the request payload extended with identity.
// A request without a payload gets a fresh one holding only the identity.
func (r Request) WithLoggedUser(identity Identity) Payload {
	return r.Data.withLoggedUser(identity)
}
