package handler

import (
	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/handler/grpc"
	"github.com/MKhiriev/report-buddy/internal/handler/http"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, verifier adapter.TokenVerifier, limiters http.Limiters, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		h, err := http.NewHandler(services, verifier, limiters, cfg, logger)
		if err != nil {
			return nil, err
		}
		handlers.HTTP = h
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
