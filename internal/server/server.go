package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/handler"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds the graceful stop of the HTTP server.
const shutdownTimeout = 15 * time.Second

// Worker is a background job started with the server context.
type Worker interface {
	Run(ctx context.Context)
}

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	workers    []Worker
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, workers ...Worker) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{workers: workers, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

// run serves until ctx is cancelled or a server fails, then stops the rest.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersAreCreated
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, w := range s.workers {
		w.Run(gctx)
	}

	if s.httpServer != nil {
		g.Go(s.httpServer.serve)
	}
	if s.gRPCServer != nil {
		g.Go(s.gRPCServer.serve)
	}

	// listen for stop signals or a failed server
	g.Go(func() error {
		<-gctx.Done()
		s.Shutdown()
		return nil
	})

	err := g.Wait()
	s.logger.Info().Msg("server Shutdown gracefully")
	return err
}
