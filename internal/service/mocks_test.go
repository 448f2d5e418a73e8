package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// ─────────────────────────────────────────────
// Store mocks
// ─────────────────────────────────────────────

type mockUserRepository struct {
	getUserFn               func(ctx context.Context, userID string) (models.User, error)
	createUserFn            func(ctx context.Context, user models.User, seed store.UserSeed) (models.User, error)
	seedCaseLawFn           func(ctx context.Context, userID string, caseLaw []models.PolicyDocument) (bool, error)
	backfillTrialFn         func(ctx context.Context, userID string, trialEndsAt time.Time) (models.User, error)
	updateProfileFn         func(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	findUserByCustomerIDFn  func(ctx context.Context, customerID string) (models.User, error)
	setCustomerIDFn         func(ctx context.Context, userID, customerID string) error
	applySubscriptionUpdate func(ctx context.Context, userID string, update models.SubscriptionUpdate) (bool, error)
}

func (m *mockUserRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{}, store.ErrUserNotFound
}
func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User, seed store.UserSeed) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user, seed)
	}
	return user, nil
}
func (m *mockUserRepository) SeedCaseLaw(ctx context.Context, userID string, caseLaw []models.PolicyDocument) (bool, error) {
	if m.seedCaseLawFn != nil {
		return m.seedCaseLawFn(ctx, userID, caseLaw)
	}
	return false, nil
}
func (m *mockUserRepository) BackfillTrial(ctx context.Context, userID string, trialEndsAt time.Time) (models.User, error) {
	if m.backfillTrialFn != nil {
		return m.backfillTrialFn(ctx, userID, trialEndsAt)
	}
	return models.User{}, nil
}
func (m *mockUserRepository) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, update)
	}
	return models.User{}, nil
}
func (m *mockUserRepository) FindUserByCustomerID(ctx context.Context, customerID string) (models.User, error) {
	if m.findUserByCustomerIDFn != nil {
		return m.findUserByCustomerIDFn(ctx, customerID)
	}
	return models.User{}, store.ErrUserNotFound
}
func (m *mockUserRepository) SetCustomerID(ctx context.Context, userID, customerID string) error {
	if m.setCustomerIDFn != nil {
		return m.setCustomerIDFn(ctx, userID, customerID)
	}
	return nil
}
func (m *mockUserRepository) ApplySubscriptionUpdate(ctx context.Context, userID string, update models.SubscriptionUpdate) (bool, error) {
	if m.applySubscriptionUpdate != nil {
		return m.applySubscriptionUpdate(ctx, userID, update)
	}
	return true, nil
}

type mockReportRepository struct {
	createFn func(ctx context.Context, report models.Report) (models.Report, error)
	listFn   func(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error)
	getFn    func(ctx context.Context, userID, reportID string) (models.Report, error)
	updateFn func(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error)
	deleteFn func(ctx context.Context, userID, reportID string) error
}

func (m *mockReportRepository) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	if m.createFn != nil {
		return m.createFn(ctx, report)
	}
	return report, nil
}
func (m *mockReportRepository) ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return models.ReportList{}, nil
}
func (m *mockReportRepository) GetReport(ctx context.Context, userID, reportID string) (models.Report, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, reportID)
	}
	return models.Report{}, store.ErrReportNotFound
}
func (m *mockReportRepository) UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, reportID, update)
	}
	return models.Report{ID: reportID, UserID: userID}, nil
}
func (m *mockReportRepository) DeleteReport(ctx context.Context, userID, reportID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, reportID)
	}
	return nil
}

type mockStyleRepository struct {
	listProfilesFn func(ctx context.Context, userID string) ([]models.StyleProfile, error)
	getProfileFn   func(ctx context.Context, userID string, reportType models.ReportType) (models.StyleProfile, error)
	upsertFn       func(ctx context.Context, profile models.StyleProfile, update models.StyleProfileUpdate) (models.StyleProfile, error)
	countFn        func(ctx context.Context, userID string) (map[models.ReportType]int, error)
	createFn       func(ctx context.Context, example models.ExampleReport, quota int) (models.ExampleReport, error)
	previewsFn     func(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error)
	examplesFn     func(ctx context.Context, userID string, reportType models.ReportType, limit int) ([]models.ExampleReport, error)
	deleteFn       func(ctx context.Context, userID, exampleID string) error
}

func (m *mockStyleRepository) ListStyleProfiles(ctx context.Context, userID string) ([]models.StyleProfile, error) {
	if m.listProfilesFn != nil {
		return m.listProfilesFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockStyleRepository) GetStyleProfile(ctx context.Context, userID string, reportType models.ReportType) (models.StyleProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID, reportType)
	}
	return models.StyleProfile{}, store.ErrStyleProfileNotFound
}
func (m *mockStyleRepository) UpsertStyleProfile(ctx context.Context, profile models.StyleProfile, update models.StyleProfileUpdate) (models.StyleProfile, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, profile, update)
	}
	return profile, nil
}
func (m *mockStyleRepository) CountExamples(ctx context.Context, userID string) (map[models.ReportType]int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return map[models.ReportType]int{}, nil
}
func (m *mockStyleRepository) CreateExample(ctx context.Context, example models.ExampleReport, quota int) (models.ExampleReport, error) {
	if m.createFn != nil {
		return m.createFn(ctx, example, quota)
	}
	return example, nil
}
func (m *mockStyleRepository) ListExamplePreviews(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error) {
	if m.previewsFn != nil {
		return m.previewsFn(ctx, userID, reportType)
	}
	return nil, nil
}
func (m *mockStyleRepository) ListExamples(ctx context.Context, userID string, reportType models.ReportType, limit int) ([]models.ExampleReport, error) {
	if m.examplesFn != nil {
		return m.examplesFn(ctx, userID, reportType, limit)
	}
	return nil, nil
}
func (m *mockStyleRepository) DeleteExample(ctx context.Context, userID, exampleID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, exampleID)
	}
	return nil
}

type mockLegalRepository struct {
	createPolicyFn func(ctx context.Context, doc models.PolicyDocument) (models.PolicyDocument, error)
	listPolicies   func(ctx context.Context, userID string) ([]models.PolicyDocument, error)
	listDocsFn     func(ctx context.Context, userID string) ([]models.PolicyDocument, error)
	deletePolicyFn func(ctx context.Context, userID, policyID string) error
	listRefsFn     func(ctx context.Context, reportID string) ([]models.LegalReference, error)
	replaceRefsFn  func(ctx context.Context, reportID string, refs []models.LegalReference) error
}

func (m *mockLegalRepository) CreatePolicy(ctx context.Context, doc models.PolicyDocument) (models.PolicyDocument, error) {
	if m.createPolicyFn != nil {
		return m.createPolicyFn(ctx, doc)
	}
	return doc, nil
}
func (m *mockLegalRepository) ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	if m.listPolicies != nil {
		return m.listPolicies(ctx, userID)
	}
	return nil, nil
}
func (m *mockLegalRepository) ListLegalDocuments(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	if m.listDocsFn != nil {
		return m.listDocsFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockLegalRepository) DeletePolicy(ctx context.Context, userID, policyID string) error {
	if m.deletePolicyFn != nil {
		return m.deletePolicyFn(ctx, userID, policyID)
	}
	return nil
}
func (m *mockLegalRepository) ListReferences(ctx context.Context, reportID string) ([]models.LegalReference, error) {
	if m.listRefsFn != nil {
		return m.listRefsFn(ctx, reportID)
	}
	return []models.LegalReference{}, nil
}
func (m *mockLegalRepository) ReplaceReferences(ctx context.Context, reportID string, refs []models.LegalReference) error {
	if m.replaceRefsFn != nil {
		return m.replaceRefsFn(ctx, reportID, refs)
	}
	return nil
}

// memoryCourtPrep is an in-memory CourtPrepRepository with the same state
// rules as the SQL implementation.
type memoryCourtPrep struct {
	mu       sync.Mutex
	sessions map[string]models.CourtPrepSession
	messages map[string][]models.CourtPrepMessage
	deleted  []string
}

func newMemoryCourtPrep() *memoryCourtPrep {
	return &memoryCourtPrep{
		sessions: map[string]models.CourtPrepSession{},
		messages: map[string][]models.CourtPrepMessage{},
	}
}

func (m *memoryCourtPrep) CreateSession(_ context.Context, s models.CourtPrepSession) (models.CourtPrepSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}
func (m *memoryCourtPrep) GetSession(_ context.Context, userID, sessionID string) (models.CourtPrepSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return models.CourtPrepSession{}, store.ErrSessionNotFound
	}
	return s, nil
}
func (m *memoryCourtPrep) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	delete(m.messages, sessionID)
	m.deleted = append(m.deleted, sessionID)
	return nil
}
func (m *memoryCourtPrep) ActivateSession(_ context.Context, sessionID, assessment string, first models.CourtPrepMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.Status != models.SessionAnalyzing {
		return store.ErrSessionNotActive
	}
	s.Status = models.SessionActive
	s.VulnerabilityAssessment = &assessment
	s.MessageCount = 1
	m.sessions[sessionID] = s
	m.messages[sessionID] = append(m.messages[sessionID], first)
	return nil
}
func (m *memoryCourtPrep) ListMessages(_ context.Context, sessionID string) ([]models.CourtPrepMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CourtPrepMessage, len(m.messages[sessionID]))
	copy(out, m.messages[sessionID])
	return out, nil
}
func (m *memoryCourtPrep) AppendExchange(_ context.Context, sessionID string, userTurn, reply models.CourtPrepMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.Status != models.SessionActive {
		return store.ErrSessionNotActive
	}
	s.MessageCount += 2
	m.sessions[sessionID] = s
	m.messages[sessionID] = append(m.messages[sessionID], userTurn, reply)
	return nil
}
func (m *memoryCourtPrep) CompleteSession(_ context.Context, sessionID string, debrief *string) (models.CourtPrepSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.Status == models.SessionCompleted {
		return models.CourtPrepSession{}, store.ErrSessionCompleted
	}
	s.Status = models.SessionCompleted
	if debrief != nil {
		s.Debrief = debrief
	}
	m.sessions[sessionID] = s
	return s, nil
}

// seqIDs hands out predictable ids.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func ptr[T any](v T) *T {
	return &v
}

func reportWith(generated, final *string) models.Report {
	return models.Report{
		ID:               "r1",
		UserID:           "u1",
		ReportType:       models.ReportArrest,
		Status:           models.ReportDraft,
		GeneratedContent: generated,
		FinalContent:     final,
	}
}
