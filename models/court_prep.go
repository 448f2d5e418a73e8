package models

import "time"

// SessionStatus is the lifecycle state of a court-prep session.
type SessionStatus string

const (
	SessionAnalyzing SessionStatus = "analyzing"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// CourtPrepSession is a mock cross-examination about one report.
type CourtPrepSession struct {
	ID                      string        `json:"id"`
	ReportID                string        `json:"report_id"`
	UserID                  string        `json:"-"`
	Status                  SessionStatus `json:"status"`
	VulnerabilityAssessment *string       `json:"vulnerability_assessment"`
	Debrief                 *string       `json:"debrief"`
	MessageCount            int           `json:"message_count"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
}

// CourtPrepMessage is one persisted turn of a session transcript.
type CourtPrepMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CourtPrepTranscript is a session together with its messages.
type CourtPrepTranscript struct {
	Session  CourtPrepSession   `json:"session"`
	Messages []CourtPrepMessage `json:"messages"`
}

// CourtPrepStartRequest is the payload of POST /api/court-prep/start.
type CourtPrepStartRequest struct {
	ReportID string `json:"report_id"`
}

// CourtPrepMessageRequest is the payload of POST /api/court-prep/message.
type CourtPrepMessageRequest struct {
	ReportID  string `json:"report_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// CourtPrepSessionRequest addresses an existing session.
type CourtPrepSessionRequest struct {
	ReportID  string `json:"report_id"`
	SessionID string `json:"session_id"`
}

// CourtPrepStart is the result of starting a session.
type CourtPrepStart struct {
	SessionID               string `json:"session_id"`
	VulnerabilityAssessment string `json:"vulnerability_assessment"`
	FirstQuestion           string `json:"first_question"`
}
