package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/validators"
	"github.com/MKhiriev/report-buddy/models"
)

// The validation services check request payloads before delegating to the
// wrapped service. Validation failures match validators.ErrInvalidInput.

func validate(ctx context.Context, v validators.Validator, obj any, fields ...string) error {
	if err := v.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}
	return nil
}

// ── reports ─────────────────────────────────────────────────────────────────

type ReportValidationService struct {
	inner     ReportService
	validator validators.Validator
}

func NewReportValidationService(validator validators.Validator) ReportServiceWrapper {
	return &ReportValidationService{validator: validator}
}

func (v *ReportValidationService) Wrap(inner ReportService) ReportService {
	v.inner = inner
	return v
}

func (v *ReportValidationService) CreateReport(ctx context.Context, userID string, req models.CreateReportRequest) (models.Report, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.Report{}, err
	}
	return v.inner.CreateReport(ctx, userID, req)
}

func (v *ReportValidationService) ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error) {
	if err := validate(ctx, v.validator, filter); err != nil {
		return models.ReportList{}, err
	}
	return v.inner.ListReports(ctx, filter)
}

func (v *ReportValidationService) GetReport(ctx context.Context, userID, reportID string) (models.Report, error) {
	return v.inner.GetReport(ctx, userID, reportID)
}

func (v *ReportValidationService) UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error) {
	if err := validate(ctx, v.validator, update); err != nil {
		return models.Report{}, err
	}
	return v.inner.UpdateReport(ctx, userID, reportID, update)
}

func (v *ReportValidationService) DeleteReport(ctx context.Context, userID, reportID string) error {
	return v.inner.DeleteReport(ctx, userID, reportID)
}

func (v *ReportValidationService) SuggestCharges(ctx context.Context, userID, reportID string) (models.ChargeSuggestions, error) {
	return v.inner.SuggestCharges(ctx, userID, reportID)
}

func (v *ReportValidationService) CheckElements(ctx context.Context, userID, reportID string, req models.CheckElementsRequest) (models.ElementsAnalysis, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.ElementsAnalysis{}, err
	}
	return v.inner.CheckElements(ctx, userID, reportID, req)
}

// ── generation ──────────────────────────────────────────────────────────────

type GenerationValidationService struct {
	inner     GenerationService
	validator validators.Validator
}

func NewGenerationValidationService(validator validators.Validator) GenerationServiceWrapper {
	return &GenerationValidationService{validator: validator}
}

func (v *GenerationValidationService) Wrap(inner GenerationService) GenerationService {
	v.inner = inner
	return v
}

func (v *GenerationValidationService) CheckTranscript(ctx context.Context, req models.GenerateCheckRequest) (models.FollowUpCheck, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.FollowUpCheck{}, err
	}
	return v.inner.CheckTranscript(ctx, req)
}

func (v *GenerationValidationService) GenerateReport(ctx context.Context, userID string, req models.GenerateReportRequest) (models.GeneratedReport, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.GeneratedReport{}, err
	}
	return v.inner.GenerateReport(ctx, userID, req)
}

func (v *GenerationValidationService) RefineReport(ctx context.Context, userID string, req models.RefineRequest) (models.RefinedReport, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.RefinedReport{}, err
	}
	return v.inner.RefineReport(ctx, userID, req)
}

// ── legal ───────────────────────────────────────────────────────────────────

type LegalValidationService struct {
	inner     LegalService
	validator validators.Validator
}

func NewLegalValidationService(validator validators.Validator) LegalServiceWrapper {
	return &LegalValidationService{validator: validator}
}

func (v *LegalValidationService) Wrap(inner LegalService) LegalService {
	v.inner = inner
	return v
}

func (v *LegalValidationService) AnalyzeReport(ctx context.Context, userID, reportID string) (models.LegalAnalysis, error) {
	return v.inner.AnalyzeReport(ctx, userID, reportID)
}

func (v *LegalValidationService) UploadPolicy(ctx context.Context, userID string, req models.PolicyUploadRequest) (models.PolicyDocument, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.PolicyDocument{}, err
	}
	return v.inner.UploadPolicy(ctx, userID, req)
}

func (v *LegalValidationService) ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	return v.inner.ListPolicies(ctx, userID)
}

func (v *LegalValidationService) DeletePolicy(ctx context.Context, userID, policyID string) error {
	return v.inner.DeletePolicy(ctx, userID, policyID)
}

// ── profile ─────────────────────────────────────────────────────────────────

type ProfileValidationService struct {
	inner     ProfileService
	validator validators.Validator
}

func NewProfileValidationService(validator validators.Validator) ProfileServiceWrapper {
	return &ProfileValidationService{validator: validator}
}

func (v *ProfileValidationService) Wrap(inner ProfileService) ProfileService {
	v.inner = inner
	return v
}

func (v *ProfileValidationService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *ProfileValidationService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	if err := validate(ctx, v.validator, update); err != nil {
		return models.User{}, err
	}
	return v.inner.UpdateProfile(ctx, userID, update)
}

func (v *ProfileValidationService) UpdateStyle(ctx context.Context, userID string, reportType models.ReportType, update models.StyleProfileUpdate) (models.StyleProfile, error) {
	if err := validate(ctx, v.validator, reportType); err != nil {
		return models.StyleProfile{}, err
	}
	if err := validate(ctx, v.validator, update); err != nil {
		return models.StyleProfile{}, err
	}
	return v.inner.UpdateStyle(ctx, userID, reportType, update)
}

func (v *ProfileValidationService) UploadExample(ctx context.Context, userID string, req models.ExampleUploadRequest) (models.ExampleReport, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.ExampleReport{}, err
	}
	return v.inner.UploadExample(ctx, userID, req)
}

func (v *ProfileValidationService) ListExamples(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error) {
	if reportType != nil {
		if err := validate(ctx, v.validator, *reportType); err != nil {
			return nil, err
		}
	}
	return v.inner.ListExamples(ctx, userID, reportType)
}

func (v *ProfileValidationService) DeleteExample(ctx context.Context, userID, exampleID string) error {
	return v.inner.DeleteExample(ctx, userID, exampleID)
}

// ── court prep ──────────────────────────────────────────────────────────────

type CourtPrepValidationService struct {
	inner     CourtPrepService
	validator validators.Validator
}

func NewCourtPrepValidationService(validator validators.Validator) CourtPrepServiceWrapper {
	return &CourtPrepValidationService{validator: validator}
}

func (v *CourtPrepValidationService) Wrap(inner CourtPrepService) CourtPrepService {
	v.inner = inner
	return v
}

func (v *CourtPrepValidationService) StartSession(ctx context.Context, userID string, req models.CourtPrepStartRequest) (models.CourtPrepStart, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.CourtPrepStart{}, err
	}
	return v.inner.StartSession(ctx, userID, req)
}

func (v *CourtPrepValidationService) SendMessage(ctx context.Context, userID string, req models.CourtPrepMessageRequest) (string, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return "", err
	}
	return v.inner.SendMessage(ctx, userID, req)
}

func (v *CourtPrepValidationService) Debrief(ctx context.Context, userID string, req models.CourtPrepSessionRequest) (string, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return "", err
	}
	return v.inner.Debrief(ctx, userID, req)
}

func (v *CourtPrepValidationService) EndSession(ctx context.Context, userID string, req models.CourtPrepSessionRequest) error {
	if err := validate(ctx, v.validator, req); err != nil {
		return err
	}
	return v.inner.EndSession(ctx, userID, req)
}

func (v *CourtPrepValidationService) GetTranscript(ctx context.Context, userID, sessionID string) (models.CourtPrepTranscript, error) {
	return v.inner.GetTranscript(ctx, userID, sessionID)
}

// ── billing ─────────────────────────────────────────────────────────────────

type BillingValidationService struct {
	inner     BillingService
	validator validators.Validator
}

func NewBillingValidationService(validator validators.Validator) BillingServiceWrapper {
	return &BillingValidationService{validator: validator}
}

func (v *BillingValidationService) Wrap(inner BillingService) BillingService {
	v.inner = inner
	return v
}

func (v *BillingValidationService) CreateCheckout(ctx context.Context, userID string, req models.CheckoutRequest) (models.BillingURL, error) {
	if req.Plan == "" {
		req.Plan = models.TierStandard
	}
	if err := validate(ctx, v.validator, req); err != nil {
		return models.BillingURL{}, err
	}
	return v.inner.CreateCheckout(ctx, userID, req)
}

func (v *BillingValidationService) CreatePortal(ctx context.Context, userID string) (models.BillingURL, error) {
	return v.inner.CreatePortal(ctx, userID)
}

func (v *BillingValidationService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return v.inner.HandleWebhook(ctx, payload, signature)
}
