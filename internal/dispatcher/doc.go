// Package dispatcher routes transport-independent requests to registered
// endpoint handlers.
//
// A [Dispatcher] owns a read-only endpoint registry and an [Authenticator].
// For every request it checks the request shape, resolves the endpoint,
// enforces the endpoint method, authenticates and authorizes the caller when
// the endpoint demands it, injects the caller identity into the payload and
// finally invokes the handler. Every outcome, including handler errors and
// panics, is returned as a [models.Response] envelope.
package dispatcher
