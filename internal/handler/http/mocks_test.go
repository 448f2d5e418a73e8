package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "uid-1"
	testUserEmail = "officer@example.com"
	testToken     = "good-token"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) Health(_ context.Context) models.Health {
	return models.Health{
		Status:    models.HealthOK,
		Version:   m.version,
		Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

type mockUserService struct {
	resolveFn func(ctx context.Context, identity models.Identity) (models.User, error)
	verifyFn  func(ctx context.Context, userID string) (models.VerifiedUser, error)
}

func (m *mockUserService) Resolve(ctx context.Context, identity models.Identity) (models.User, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, identity)
	}
	return models.User{ID: identity.UID, Email: identity.Email, Name: "officer"}, nil
}

func (m *mockUserService) Verify(ctx context.Context, userID string) (models.VerifiedUser, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, userID)
	}
	return models.VerifiedUser{ID: userID, Email: testUserEmail, Name: "officer"}, nil
}

type mockAccessService struct {
	access service.Access
	err    error
}

func (m *mockAccessService) Evaluate(_ context.Context, _ string) (service.Access, error) {
	return m.access, m.err
}

type mockReportService struct {
	createFn  func(ctx context.Context, userID string, req models.CreateReportRequest) (models.Report, error)
	listFn    func(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error)
	getFn     func(ctx context.Context, userID, reportID string) (models.Report, error)
	updateFn  func(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error)
	deleteFn  func(ctx context.Context, userID, reportID string) error
	suggestFn func(ctx context.Context, userID, reportID string) (models.ChargeSuggestions, error)
	checkFn   func(ctx context.Context, userID, reportID string, req models.CheckElementsRequest) (models.ElementsAnalysis, error)
}

func (m *mockReportService) CreateReport(ctx context.Context, userID string, req models.CreateReportRequest) (models.Report, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return models.Report{}, nil
}

func (m *mockReportService) ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return models.ReportList{Reports: []models.ReportListItem{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func (m *mockReportService) GetReport(ctx context.Context, userID, reportID string) (models.Report, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, reportID)
	}
	return models.Report{ID: reportID, UserID: userID}, nil
}

func (m *mockReportService) UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, reportID, update)
	}
	return models.Report{ID: reportID, UserID: userID}, nil
}

func (m *mockReportService) DeleteReport(ctx context.Context, userID, reportID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, reportID)
	}
	return nil
}

func (m *mockReportService) SuggestCharges(ctx context.Context, userID, reportID string) (models.ChargeSuggestions, error) {
	if m.suggestFn != nil {
		return m.suggestFn(ctx, userID, reportID)
	}
	return models.ChargeSuggestions{Charges: []models.SuggestedCharge{}}, nil
}

func (m *mockReportService) CheckElements(ctx context.Context, userID, reportID string, req models.CheckElementsRequest) (models.ElementsAnalysis, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx, userID, reportID, req)
	}
	return models.ElementsAnalysis{Analysis: []models.ChargeAnalysis{}}, nil
}

type mockGenerationService struct {
	checkFn    func(ctx context.Context, req models.GenerateCheckRequest) (models.FollowUpCheck, error)
	generateFn func(ctx context.Context, userID string, req models.GenerateReportRequest) (models.GeneratedReport, error)
	refineFn   func(ctx context.Context, userID string, req models.RefineRequest) (models.RefinedReport, error)
}

func (m *mockGenerationService) CheckTranscript(ctx context.Context, req models.GenerateCheckRequest) (models.FollowUpCheck, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx, req)
	}
	return models.FollowUpCheck{Ready: true}, nil
}

func (m *mockGenerationService) GenerateReport(ctx context.Context, userID string, req models.GenerateReportRequest) (models.GeneratedReport, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, userID, req)
	}
	return models.GeneratedReport{ReportID: req.ReportID}, nil
}

func (m *mockGenerationService) RefineReport(ctx context.Context, userID string, req models.RefineRequest) (models.RefinedReport, error) {
	if m.refineFn != nil {
		return m.refineFn(ctx, userID, req)
	}
	return models.RefinedReport{ReportID: req.ReportID}, nil
}

type mockLegalService struct {
	analyzeFn func(ctx context.Context, userID, reportID string) (models.LegalAnalysis, error)
	uploadFn  func(ctx context.Context, userID string, req models.PolicyUploadRequest) (models.PolicyDocument, error)
	listFn    func(ctx context.Context, userID string) ([]models.PolicyDocument, error)
	deleteFn  func(ctx context.Context, userID, policyID string) error
}

func (m *mockLegalService) AnalyzeReport(ctx context.Context, userID, reportID string) (models.LegalAnalysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, userID, reportID)
	}
	return models.LegalAnalysis{}, nil
}

func (m *mockLegalService) UploadPolicy(ctx context.Context, userID string, req models.PolicyUploadRequest) (models.PolicyDocument, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, userID, req)
	}
	return models.PolicyDocument{UserID: userID, Filename: req.Filename, Content: req.Content, IsCaseLaw: req.IsCaseLaw}, nil
}

func (m *mockLegalService) ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockLegalService) DeletePolicy(ctx context.Context, userID, policyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, policyID)
	}
	return nil
}

type mockProfileService struct {
	getFn           func(ctx context.Context, userID string) (models.Profile, error)
	updateFn        func(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	updateStyleFn   func(ctx context.Context, userID string, reportType models.ReportType, update models.StyleProfileUpdate) (models.StyleProfile, error)
	uploadExampleFn func(ctx context.Context, userID string, req models.ExampleUploadRequest) (models.ExampleReport, error)
	listExamplesFn  func(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error)
	deleteExampleFn func(ctx context.Context, userID, exampleID string) error
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return models.Profile{User: models.User{ID: userID}}, nil
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, update)
	}
	user := models.User{ID: userID}
	if update.Name.Value != nil {
		user.Name = *update.Name.Value
	}
	return user, nil
}

func (m *mockProfileService) UpdateStyle(ctx context.Context, userID string, reportType models.ReportType, update models.StyleProfileUpdate) (models.StyleProfile, error) {
	if m.updateStyleFn != nil {
		return m.updateStyleFn(ctx, userID, reportType, update)
	}
	return models.StyleProfile{UserID: userID, ReportType: reportType}, nil
}

func (m *mockProfileService) UploadExample(ctx context.Context, userID string, req models.ExampleUploadRequest) (models.ExampleReport, error) {
	if m.uploadExampleFn != nil {
		return m.uploadExampleFn(ctx, userID, req)
	}
	return models.ExampleReport{UserID: userID, ReportType: req.ReportType, Content: req.Content}, nil
}

func (m *mockProfileService) ListExamples(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error) {
	if m.listExamplesFn != nil {
		return m.listExamplesFn(ctx, userID, reportType)
	}
	return nil, nil
}

func (m *mockProfileService) DeleteExample(ctx context.Context, userID, exampleID string) error {
	if m.deleteExampleFn != nil {
		return m.deleteExampleFn(ctx, userID, exampleID)
	}
	return nil
}

type mockCourtPrepService struct {
	startFn      func(ctx context.Context, userID string, req models.CourtPrepStartRequest) (models.CourtPrepStart, error)
	messageFn    func(ctx context.Context, userID string, req models.CourtPrepMessageRequest) (string, error)
	debriefFn    func(ctx context.Context, userID string, req models.CourtPrepSessionRequest) (string, error)
	endFn        func(ctx context.Context, userID string, req models.CourtPrepSessionRequest) error
	transcriptFn func(ctx context.Context, userID, sessionID string) (models.CourtPrepTranscript, error)
}

func (m *mockCourtPrepService) StartSession(ctx context.Context, userID string, req models.CourtPrepStartRequest) (models.CourtPrepStart, error) {
	if m.startFn != nil {
		return m.startFn(ctx, userID, req)
	}
	return models.CourtPrepStart{}, nil
}

func (m *mockCourtPrepService) SendMessage(ctx context.Context, userID string, req models.CourtPrepMessageRequest) (string, error) {
	if m.messageFn != nil {
		return m.messageFn(ctx, userID, req)
	}
	return "", nil
}

func (m *mockCourtPrepService) Debrief(ctx context.Context, userID string, req models.CourtPrepSessionRequest) (string, error) {
	if m.debriefFn != nil {
		return m.debriefFn(ctx, userID, req)
	}
	return "", nil
}

func (m *mockCourtPrepService) EndSession(ctx context.Context, userID string, req models.CourtPrepSessionRequest) error {
	if m.endFn != nil {
		return m.endFn(ctx, userID, req)
	}
	return nil
}

func (m *mockCourtPrepService) GetTranscript(ctx context.Context, userID, sessionID string) (models.CourtPrepTranscript, error) {
	if m.transcriptFn != nil {
		return m.transcriptFn(ctx, userID, sessionID)
	}
	return models.CourtPrepTranscript{}, nil
}

type mockBillingService struct {
	checkoutFn func(ctx context.Context, userID string, req models.CheckoutRequest) (models.BillingURL, error)
	portalFn   func(ctx context.Context, userID string) (models.BillingURL, error)
	webhookFn  func(ctx context.Context, payload []byte, signature string) error
}

func (m *mockBillingService) CreateCheckout(ctx context.Context, userID string, req models.CheckoutRequest) (models.BillingURL, error) {
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx, userID, req)
	}
	return models.BillingURL{}, nil
}

func (m *mockBillingService) CreatePortal(ctx context.Context, userID string) (models.BillingURL, error) {
	if m.portalFn != nil {
		return m.portalFn(ctx, userID)
	}
	return models.BillingURL{}, nil
}

func (m *mockBillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if m.webhookFn != nil {
		return m.webhookFn(ctx, payload, signature)
	}
	return nil
}

// ─────────────────────────────────────────────
// Transport stubs
// ─────────────────────────────────────────────

// stubVerifier accepts testToken only.
type stubVerifier struct {
	identity models.Identity
	err      error
}

func (s stubVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	if s.err != nil {
		return models.Identity{}, s.err
	}
	if token != testToken {
		return models.Identity{}, errBadTestToken
	}
	return s.identity, nil
}

var errBadTestToken = errors.New("unknown test token")

// countingLimiter allows the first limit requests per key.
type countingLimiter struct {
	limit int

	mu     sync.Mutex
	counts map[string]int
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{limit: limit, counts: make(map[string]int)}
}

func (l *countingLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= l.limit
}

// ─────────────────────────────────────────────
// Router harness
// ─────────────────────────────────────────────

// testServices returns a service set backed by default mocks. The user is
// subscribed and pro.
func testServices() *service.Services {
	return &service.Services{
		AppInfoService:    &mockAppInfoService{version: "1.4.0"},
		UserService:       &mockUserService{},
		AccessService:     &mockAccessService{access: service.Access{Subscribed: true, Pro: true}},
		ReportService:     &mockReportService{},
		GenerationService: &mockGenerationService{},
		LegalService:      &mockLegalService{},
		ProfileService:    &mockProfileService{},
		CourtPrepService:  &mockCourtPrepService{},
		BillingService:    &mockBillingService{},
	}
}

func testServerConfig() config.Server {
	return config.Server{MaxBodyBytes: 2 << 20}
}

// newTestAPI builds the full router over svcs with the test verifier.
func newTestAPI(t *testing.T, svcs *service.Services, limiters Limiters) http.Handler {
	t.Helper()

	verifier := stubVerifier{identity: models.Identity{UID: testUserID, Email: testUserEmail}}
	h, err := NewHandler(svcs, verifier, limiters, testServerConfig(), logger.Nop())
	require.NoError(t, err)
	return h.Init()
}

// doRequest sends an authenticated request with an optional JSON body.
func doRequest(t *testing.T, api http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)

	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	return decodeBody[map[string]any](t, rr)
}
