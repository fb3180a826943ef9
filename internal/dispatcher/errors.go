// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatcher

import "errors"

var (
	// ErrNoEndpoints is returned by New when the endpoint registry is nil.
	ErrNoEndpoints = errors.New("endpoints are required")

	// ErrNoAuthenticator is returned by New when at least one endpoint
	// requires authentication but no authenticator was supplied.
	ErrNoAuthenticator = errors.New("authenticator is required by endpoints with auth")
)
