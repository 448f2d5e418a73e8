// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business operations of report-buddy: account
// resolution and access control, report editing and generation, legal
// analysis, style profiles, court preparation and billing.
package service

import (
	"context"

	"github.com/MKhiriev/report-buddy/models"
)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) models.Health
}

// UserService resolves verified identities to local accounts.
type UserService interface {
	// Resolve returns the account of identity, creating and seeding it on
	// first sight.
	Resolve(ctx context.Context, identity models.Identity) (models.User, error)
	// Verify returns the account summary, starting the trial of legacy
	// accounts without a subscription status.
	Verify(ctx context.Context, userID string) (models.VerifiedUser, error)
}

// AccessService evaluates subscription gates.
type AccessService interface {
	Evaluate(ctx context.Context, userID string) (Access, error)
}

type ReportService interface {
	CreateReport(ctx context.Context, userID string, req models.CreateReportRequest) (models.Report, error)
	ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error)
	GetReport(ctx context.Context, userID, reportID string) (models.Report, error)
	UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error)
	DeleteReport(ctx context.Context, userID, reportID string) error

	SuggestCharges(ctx context.Context, userID, reportID string) (models.ChargeSuggestions, error)
	CheckElements(ctx context.Context, userID, reportID string, req models.CheckElementsRequest) (models.ElementsAnalysis, error)
}

type GenerationService interface {
	CheckTranscript(ctx context.Context, req models.GenerateCheckRequest) (models.FollowUpCheck, error)
	GenerateReport(ctx context.Context, userID string, req models.GenerateReportRequest) (models.GeneratedReport, error)
	RefineReport(ctx context.Context, userID string, req models.RefineRequest) (models.RefinedReport, error)
}

type LegalService interface {
	AnalyzeReport(ctx context.Context, userID, reportID string) (models.LegalAnalysis, error)
	UploadPolicy(ctx context.Context, userID string, req models.PolicyUploadRequest) (models.PolicyDocument, error)
	ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error)
	DeletePolicy(ctx context.Context, userID, policyID string) error
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	UpdateStyle(ctx context.Context, userID string, reportType models.ReportType, update models.StyleProfileUpdate) (models.StyleProfile, error)

	UploadExample(ctx context.Context, userID string, req models.ExampleUploadRequest) (models.ExampleReport, error)
	ListExamples(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error)
	DeleteExample(ctx context.Context, userID, exampleID string) error
}

type CourtPrepService interface {
	StartSession(ctx context.Context, userID string, req models.CourtPrepStartRequest) (models.CourtPrepStart, error)
	SendMessage(ctx context.Context, userID string, req models.CourtPrepMessageRequest) (string, error)
	Debrief(ctx context.Context, userID string, req models.CourtPrepSessionRequest) (string, error)
	EndSession(ctx context.Context, userID string, req models.CourtPrepSessionRequest) error
	GetTranscript(ctx context.Context, userID, sessionID string) (models.CourtPrepTranscript, error)
}

type BillingService interface {
	CreateCheckout(ctx context.Context, userID string, req models.CheckoutRequest) (models.BillingURL, error)
	CreatePortal(ctx context.Context, userID string) (models.BillingURL, error)
	// HandleWebhook verifies and applies a billing event. Only verification
	// failures are returned; processing failures are logged.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// IDGenerator produces entity ids.
type IDGenerator interface {
	Generate() string
}

// ReportServiceWrapper decorates a ReportService, e.g. with input validation.
type ReportServiceWrapper interface {
	Wrap(ReportService) ReportService
}

type GenerationServiceWrapper interface {
	Wrap(GenerationService) GenerationService
}

type LegalServiceWrapper interface {
	Wrap(LegalService) LegalService
}

type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService
}

type CourtPrepServiceWrapper interface {
	Wrap(CourtPrepService) CourtPrepService
}

type BillingServiceWrapper interface {
	Wrap(BillingService) BillingService
}
