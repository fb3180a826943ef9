// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the dispatch transports.
//
// The primary abstraction is [DispatchClient], which hides whether requests
// travel over HTTP ([NewHTTPDispatchClient]) or gRPC
// ([NewGRPCDispatchClient]). Every call returns the decoded response
// envelope; an envelope with an error status is a successful call.
//
// Error values defined in errors.go are returned only when no envelope could
// be obtained. [EnvelopeError] maps an envelope's status to the same values
// for callers that prefer errors.Is.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/models"
)

// DispatchClient sends requests to a dispatch server.
type DispatchClient interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "".
	Token() string

	// Get dispatches a GET request to endpoint with optional data.
	Get(ctx context.Context, endpoint string, data models.Payload) (*models.Response, error)

	// Post dispatches a POST request to endpoint with optional data.
	Post(ctx context.Context, endpoint string, data models.Payload) (*models.Response, error)

	// Close releases the underlying connection.
	Close() error
}
