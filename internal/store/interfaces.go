package store

import (
	"context"
	"time"

	"github.com/MKhiriev/report-buddy/models"
)

// UserSeed is the data copied into a new account on first sight.
type UserSeed struct {
	StyleProfiles []models.StyleProfile
	CaseLaw       []models.PolicyDocument
}

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	// CreateUser inserts the user and its seed in one transaction.
	CreateUser(ctx context.Context, user models.User, seed UserSeed) (models.User, error)
	// SeedCaseLaw copies the default case law once per user.
	SeedCaseLaw(ctx context.Context, userID string, caseLaw []models.PolicyDocument) (bool, error)
	BackfillTrial(ctx context.Context, userID string, trialEndsAt time.Time) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)

	FindUserByCustomerID(ctx context.Context, customerID string) (models.User, error)
	SetCustomerID(ctx context.Context, userID, customerID string) error
	// ApplySubscriptionUpdate reports false when a newer billing event was
	// already applied.
	ApplySubscriptionUpdate(ctx context.Context, userID string, update models.SubscriptionUpdate) (bool, error)
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report models.Report) (models.Report, error)
	ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error)
	GetReport(ctx context.Context, userID, reportID string) (models.Report, error)
	UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error)
	// DeleteReport removes the report with its legal references and
	// court-prep sessions in one transaction.
	DeleteReport(ctx context.Context, userID, reportID string) error
}

type StyleRepository interface {
	ListStyleProfiles(ctx context.Context, userID string) ([]models.StyleProfile, error)
	GetStyleProfile(ctx context.Context, userID string, reportType models.ReportType) (models.StyleProfile, error)
	UpsertStyleProfile(ctx context.Context, profile models.StyleProfile, update models.StyleProfileUpdate) (models.StyleProfile, error)

	CountExamples(ctx context.Context, userID string) (map[models.ReportType]int, error)
	CreateExample(ctx context.Context, example models.ExampleReport, quota int) (models.ExampleReport, error)
	ListExamplePreviews(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error)
	ListExamples(ctx context.Context, userID string, reportType models.ReportType, limit int) ([]models.ExampleReport, error)
	DeleteExample(ctx context.Context, userID, exampleID string) error
}

type LegalRepository interface {
	CreatePolicy(ctx context.Context, doc models.PolicyDocument) (models.PolicyDocument, error)
	ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error)
	ListLegalDocuments(ctx context.Context, userID string) ([]models.PolicyDocument, error)
	DeletePolicy(ctx context.Context, userID, policyID string) error

	ListReferences(ctx context.Context, reportID string) ([]models.LegalReference, error)
	// ReplaceReferences deletes every reference of the report and inserts
	// refs in one transaction.
	ReplaceReferences(ctx context.Context, reportID string, refs []models.LegalReference) error
}

type CourtPrepRepository interface {
	CreateSession(ctx context.Context, session models.CourtPrepSession) (models.CourtPrepSession, error)
	GetSession(ctx context.Context, userID, sessionID string) (models.CourtPrepSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	// ActivateSession stores the assessment and the opening question and
	// moves the session from analyzing to active.
	ActivateSession(ctx context.Context, sessionID, assessment string, first models.CourtPrepMessage) error
	ListMessages(ctx context.Context, sessionID string) ([]models.CourtPrepMessage, error)
	// AppendExchange stores one user turn and its reply on an active session.
	AppendExchange(ctx context.Context, sessionID string, userTurn, reply models.CourtPrepMessage) error
	CompleteSession(ctx context.Context, sessionID string, debrief *string) (models.CourtPrepSession, error)
}
