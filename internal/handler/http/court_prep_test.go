package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCourtPrep(t *testing.T) {
	svcs := testServices()
	var got models.CourtPrepStartRequest
	svcs.CourtPrepService = &mockCourtPrepService{startFn: func(_ context.Context, _ string, req models.CourtPrepStartRequest) (models.CourtPrepStart, error) {
		got = req
		return models.CourtPrepStart{SessionID: "s1", VulnerabilityAssessment: "Timeline gap", FirstQuestion: "Officer, when did you arrive?"}, nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodPost, "/api/court-prep/start", `{"report_id":"r1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "r1", got.ReportID)
	start := decodeBody[models.CourtPrepStart](t, rr)
	assert.Equal(t, "s1", start.SessionID)
	assert.Equal(t, "Officer, when did you arrive?", start.FirstQuestion)
}

func TestCourtPrepMessage(t *testing.T) {
	svcs := testServices()
	svcs.CourtPrepService = &mockCourtPrepService{messageFn: func(_ context.Context, _ string, req models.CourtPrepMessageRequest) (string, error) {
		return "And you are certain of that, " + req.Message + "?", nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodPost, "/api/court-prep/message", `{"report_id":"r1","session_id":"s1","message":"yes"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"response":"And you are certain of that, yes?"}`, rr.Body.String())
}

func TestCourtPrepDebrief(t *testing.T) {
	svcs := testServices()
	svcs.CourtPrepService = &mockCourtPrepService{debriefFn: func(context.Context, string, models.CourtPrepSessionRequest) (string, error) {
		return "Strengths: consistent timeline.", nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodPost, "/api/court-prep/debrief", `{"report_id":"r1","session_id":"s1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"debrief":"Strengths: consistent timeline."}`, rr.Body.String())
}

func TestEndCourtPrep(t *testing.T) {
	svcs := testServices()
	var got models.CourtPrepSessionRequest
	svcs.CourtPrepService = &mockCourtPrepService{endFn: func(_ context.Context, _ string, req models.CourtPrepSessionRequest) error {
		got = req
		return nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodPost, "/api/court-prep/end", `{"report_id":"r1","session_id":"s2"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "s2", got.SessionID)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
}

func TestCourtPrep_SessionErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "message to ended session", path: "/api/court-prep/message", err: store.ErrSessionNotActive, wantStatus: http.StatusBadRequest, wantError: app.MsgSessionNotActive},
		{name: "debrief twice", path: "/api/court-prep/debrief", err: store.ErrSessionCompleted, wantStatus: http.StatusBadRequest, wantError: app.MsgSessionAlreadyCompleted},
		{name: "end unknown session", path: "/api/court-prep/end", err: store.ErrSessionNotFound, wantStatus: http.StatusNotFound, wantError: app.MsgSessionNotFound},
		{name: "message storage failure", path: "/api/court-prep/message", err: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError, wantError: app.MsgFailedToProcessMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := testServices()
			svcs.CourtPrepService = &mockCourtPrepService{
				messageFn: func(context.Context, string, models.CourtPrepMessageRequest) (string, error) { return "", tt.err },
				debriefFn: func(context.Context, string, models.CourtPrepSessionRequest) (string, error) { return "", tt.err },
				endFn:     func(context.Context, string, models.CourtPrepSessionRequest) error { return tt.err },
			}
			api := newTestAPI(t, svcs, Limiters{})

			rr := doRequest(t, api, http.MethodPost, tt.path, `{"report_id":"r1","session_id":"s1","message":"m"}`)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, errorBody(t, rr)["error"])
		})
	}
}

func TestGetCourtPrepSession(t *testing.T) {
	svcs := testServices()
	var gotID string
	svcs.CourtPrepService = &mockCourtPrepService{transcriptFn: func(_ context.Context, _ string, sessionID string) (models.CourtPrepTranscript, error) {
		gotID = sessionID
		return models.CourtPrepTranscript{
			Session: models.CourtPrepSession{ID: sessionID, Status: models.SessionActive, MessageCount: 2},
			Messages: []models.CourtPrepMessage{
				{Role: models.RoleAssistant, Content: "State your name."},
				{Role: models.RoleUser, Content: "Officer Diaz."},
			},
		}, nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodGet, "/api/court-prep/session/s8", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "s8", gotID)
	got := decodeBody[models.CourtPrepTranscript](t, rr)
	assert.Equal(t, 2, got.Session.MessageCount)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Officer Diaz.", got.Messages[1].Content)
}
