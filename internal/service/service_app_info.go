package service

import (
	"context"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo
	now        func() time.Time

	logger *logger.Logger
}

// NewAppInfoService reports the configured version, falling back to the
// version embedded at build time.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	version := cfg.Version
	if version == "" {
		version = build.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: version,
		build:      build,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Health(ctx context.Context) models.Health {
	return models.Health{
		Status:    models.HealthOK,
		Version:   s.appVersion,
		Commit:    s.build.BuildCommit(),
		BuiltAt:   s.build.BuildDate(),
		Timestamp: s.now().UTC(),
	}
}
