// Package http implements the HTTP transport of the dispatcher.
//
// Two adapters share the single /api route: GET reads endpoint, token and a
// JSON-encoded data object from the query string, POST reads the same fields
// from a JSON body. Both build a [models.Request] and write the resulting
// envelope as JSON. Tracing, access logging, compression, integrity checks,
// timeouts and Prometheus metrics are handled by middleware.
package http
