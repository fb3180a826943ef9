// Package server wires and runs the application's transport servers.
//
// It provides orchestration for HTTP, gRPC and NATS server lifecycles,
// including startup, signal handling, and graceful shutdown of all enabled
// transports.
package server
