// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"context"
	"slices"
)

// HandlerFunc handles the payload of a dispatched request.
//
// Client-side failures (validation, conflicts, missing resources) are
// reported by returning the matching envelope. A non-nil error means an
// unexpected fault and is converted into a 500 envelope by the dispatcher.
type HandlerFunc func(ctx context.Context, payload Payload) (*Response, error)

// Endpoint describes one routable endpoint of the dispatcher.
//
// Endpoints are built once while configuring the application and must be
// treated as read-only afterwards.
type Endpoint struct {
	// Method is the exact verb the endpoint accepts (e.g. "GET").
	Method string

	// Handler is invoked for matching requests. A nil Handler marks a
	// registered endpoint that is not callable.
	Handler HandlerFunc

	// AuthRequired makes the dispatcher authenticate the request token
	// before invoking Handler.
	AuthRequired bool

	// Roles is an optional allow-list of identity roles. A nil slice means
	// every authenticated caller is allowed; a non-nil empty slice allows no one.
	// Roles are only checked when AuthRequired is set.
	Roles []string
}

// Endpoints maps endpoint names to their registry entries.
type Endpoints map[string]Endpoint

// EndpointOption customizes an [Endpoint] built by [NewEndpoint].
type EndpointOption func(*Endpoint)

// WithAuth marks the endpoint as requiring authentication.
func WithAuth() EndpointOption {
	return func(e *Endpoint) {
		e.AuthRequired = true
	}
}

// WithRoles restricts the endpoint to the given roles.
func WithRoles(roles ...string) EndpointOption {
	return func(e *Endpoint) {
		e.Roles = append(make([]string, 0, len(roles)), roles...)
	}
}

// NewEndpoint builds a registry entry. By default authentication is not
// required and roles are unrestricted.
func NewEndpoint(handler HandlerFunc, method string, opts ...EndpointOption) Endpoint {
	e := Endpoint{
		Method:  method,
		Handler: handler,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Allows reports whether role passes the endpoint's allow-list.
func (e Endpoint) Allows(role string) bool {
	if e.Roles == nil {
		return true
	}
	return slices.Contains(e.Roles, role)
}
