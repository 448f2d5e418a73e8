package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name of the report API. The empty name
// reports the process as a whole.
const ServiceName = "reportbuddy.API"

// Handler is the root gRPC transport handler.
//
// It exposes the standard gRPC health protocol so that orchestrators can probe
// the process next to the REST API. A handler instance is created once at
// startup and shared by the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger. Both health entries start in NOT_SERVING until [Handler.SetServing].
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// SetServing flips every health entry to SERVING or NOT_SERVING.
func (h *Handler) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)

	version := ""
	if h.services != nil && h.services.AppInfoService != nil {
		version = h.services.AppInfoService.GetAppVersion(context.Background())
	}
	h.logger.Info().Str("status", st.String()).Str("version", version).Msg("gRPC health status changed")
}

// Shutdown marks every entry NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogging logs every unary call with its status code and duration.
func (h *Handler) UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		h.logger.Debug().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("gRPC call")
		return resp, err
	}
}
