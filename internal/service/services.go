package service

import (
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/caselaw"
	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/internal/validators"
	"github.com/MKhiriev/report-buddy/models"
)

type Services struct {
	AppInfoService    AppInfoService
	UserService       UserService
	AccessService     AccessService
	ReportService     ReportService
	GenerationService GenerationService
	LegalService      LegalService
	ProfileService    ProfileService
	CourtPrepService  CourtPrepService
	BillingService    BillingService
}

// Dependencies are the external collaborators of the services.
type Dependencies struct {
	LLM adapter.ChatCompleter
	// Billing may be nil when billing is not configured.
	Billing adapter.BillingProvider
	CaseLaw *caselaw.Dataset
	IDs     IDGenerator
	Build   models.AppBuildInfo
}

func NewServices(storages *store.Storages, deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, deps.Build, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create app info service: %w", err)
	}

	validator := validators.NewRequestValidator()

	reports := NewReportService(storages.Reports, storages.Legal, deps.LLM, deps.IDs)
	generation := NewGenerationService(storages.Reports, storages.Styles, storages.Legal, deps.LLM)
	legal := NewLegalService(storages.Users, storages.Reports, storages.Legal, deps.LLM, deps.IDs)
	profile := NewProfileService(storages.Users, storages.Styles, deps.IDs)
	courtPrep := NewCourtPrepService(storages.Reports, storages.Legal, storages.CourtPrep, deps.LLM, deps.IDs)
	billing := NewBillingService(storages.Users, deps.Billing, cfg.Billing, cfg.App.FrontendURL)

	logger.Info().Bool("billing_enabled", deps.Billing != nil).Msg("services created")

	return &Services{
		AppInfoService:    appInfo,
		UserService:       NewUserService(storages.Users, deps.CaseLaw, deps.IDs),
		AccessService:     NewAccessService(storages.Users, cfg.Billing.ProPriceID != ""),
		ReportService:     NewReportValidationService(validator).Wrap(reports),
		GenerationService: NewGenerationValidationService(validator).Wrap(generation),
		LegalService:      NewLegalValidationService(validator).Wrap(legal),
		ProfileService:    NewProfileValidationService(validator).Wrap(profile),
		CourtPrepService:  NewCourtPrepValidationService(validator).Wrap(courtPrep),
		BillingService:    NewBillingValidationService(validator).Wrap(billing),
	}, nil
}
