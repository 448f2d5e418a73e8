package server

import (
	"fmt"
	"net"

	"github.com/MKhiriev/report-buddy/internal/config"
	myGRPC "github.com/MKhiriev/report-buddy/internal/handler/grpc"
	"github.com/MKhiriev/report-buddy/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.GRPCAddress, err)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(handler.UnaryLogging()))
	handler.Register(srv)

	return &grpcServer{
		handler:         handler,
		server:          srv,
		gRPCNetListener: lis,
		logger:          logger,
	}, nil
}

func (g *grpcServer) serve() error {
	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("Launching GRPC server")
	g.handler.SetServing(true)
	if err := g.server.Serve(g.gRPCNetListener); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

func (g *grpcServer) RunServer() {
	if err := g.serve(); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
