package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_ConfiguredVersion(t *testing.T) {
	build := models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc123")

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, build, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_FallsBackToBuildVersion(t *testing.T) {
	build := models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc123")

	svc, err := NewAppInfoService(config.App{}, build, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "0.9.0", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_NoVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────

func TestHealth_ReportsStatusVersionAndTime(t *testing.T) {
	build := models.NewAppBuildInfo("", "2026-02-27T10:00:00Z", "abc123")
	svc, err := NewAppInfoService(config.App{Version: "2.5.1"}, build, logger.Nop())
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	svc.(*appInfoService).now = func() time.Time { return fixed }

	health := svc.Health(context.Background())

	assert.Equal(t, models.HealthOK, health.Status)
	assert.Equal(t, "2.5.1", health.Version)
	assert.Equal(t, "abc123", health.Commit)
	assert.Equal(t, "2026-02-27T10:00:00Z", health.BuiltAt)
	assert.Equal(t, fixed.UTC(), health.Timestamp)
	assert.Equal(t, time.UTC, health.Timestamp.Location())
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
