// Package grpc exposes the dispatcher as the unary gRPC service
// dispatch.v1.Dispatcher/Handle.
//
// Messages are JSON, not protobuf: the request is the JSON form of
// models.Request and the reply is the flat JSON envelope. Clients select the
// codec with grpc.CallContentSubtype("json"); [NewDispatcherClient] does so
// automatically.
package grpc
