package server

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	myGRPC "github.com/MKhiriev/go-api-dispatch/internal/handler/grpc"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
)

type grpcServer struct {
	server          *grpc.Server
	health          *health.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer(handler.ServerOptions()...)
	handler.Register(server)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	return &grpcServer{
		server:          server,
		health:          healthServer,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.health.Shutdown()
	g.server.GracefulStop()
	// no-op once Serve has run
	_ = g.gRPCNetListener.Close()
}
