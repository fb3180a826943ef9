package server

// Server is a dispatch transport: the HTTP listener, the gRPC listener, the
// NATS subscription, or the composite returned by [NewServer] that runs every
// configured one of them.
//
// RunServer blocks while requests are being dispatched. On the composite it
// also waits for SIGTERM, SIGINT or SIGQUIT and then shuts every transport
// down. Shutdown lets in-flight dispatches finish and may be called more
// than once.
type Server interface {
	RunServer()
	Shutdown()
}

var (
	_ Server = (*server)(nil)
	_ Server = (*httpServer)(nil)
	_ Server = (*grpcServer)(nil)
	_ Server = (*natsServer)(nil)
)
