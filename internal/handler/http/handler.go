package http

import (
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/ratelimit"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/internal/utils"
)

// Limiters are the request limiters of the API. A nil limiter disables its
// quota.
type Limiters struct {
	// General applies to every /api request.
	General ratelimit.Limiter
	// AI applies to the routes that call the language model.
	AI ratelimit.Limiter
	// Auth applies to /api/auth.
	Auth ratelimit.Limiter
}

type Handler struct {
	services *service.Services
	verifier adapter.TokenVerifier
	limiters Limiters
	trusted  *utils.TrustedProxies
	cfg      config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, verifier adapter.TokenVerifier, limiters Limiters, cfg config.Server, logger *logger.Logger) (*Handler, error) {
	if services == nil {
		return nil, ErrNoServices
	}
	if verifier == nil {
		return nil, ErrNoTokenVerifier
	}

	trusted, err := utils.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	logger.Info().Strs("allowed_origins", cfg.AllowedOrigins).Msg("http handler created")
	return &Handler{
		services: services,
		verifier: verifier,
		limiters: limiters,
		trusted:  trusted,
		cfg:      cfg,
		logger:   logger,
	}, nil
}
