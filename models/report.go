package models

import (
	"fmt"
	"time"
)

// ReportType is the kind of police report being written.
type ReportType string

const (
	ReportIncident     ReportType = "incident"
	ReportArrest       ReportType = "arrest"
	ReportSupplemental ReportType = "supplemental"
)

// ReportTypes lists every supported report type in display order.
var ReportTypes = []ReportType{ReportIncident, ReportArrest, ReportSupplemental}

// Valid reports whether t is a supported report type.
func (t ReportType) Valid() bool {
	for _, rt := range ReportTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// DefaultTitle is used when a report is created without a title.
func (t ReportType) DefaultTitle() string {
	return fmt.Sprintf("New %s report", t)
}

// ReportStatus is the editing state of a report.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportCompleted ReportStatus = "completed"
)

// Report is a user-owned police report.
//
// FinalContent is the officer's manual edit and always takes precedence over
// GeneratedContent when it is non-null.
type Report struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	ReportType ReportType   `json:"report_type"`
	Status     ReportStatus `json:"status"`
	Title      string       `json:"title"`
	CaseNumber *string      `json:"case_number"`

	Transcript       *string `json:"transcript"`
	GeneratedContent *string `json:"generated_content"`
	FinalContent     *string `json:"final_content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LegalReferences []LegalReference `json:"legal_references,omitempty"`
}

// Content returns the current text of the report: the final content when it
// is non-empty, the generated content otherwise. The second value is false when
// the report has no content at all.
func (r Report) Content() (string, bool) {
	if r.FinalContent != nil && *r.FinalContent != "" {
		return *r.FinalContent, true
	}
	if r.GeneratedContent != nil && *r.GeneratedContent != "" {
		return *r.GeneratedContent, true
	}
	return "", false
}

// ReportListItem is the body-less projection of a report used by listings.
type ReportListItem struct {
	ID         string       `json:"id"`
	ReportType ReportType   `json:"report_type"`
	Status     ReportStatus `json:"status"`
	Title      string       `json:"title"`
	CaseNumber *string      `json:"case_number"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ReportListFilter selects a page of a user's reports.
type ReportListFilter struct {
	UserID string
	Status *ReportStatus
	Page   int
	Limit  int
}

// Offset returns the number of rows to skip for the requested page.
func (f ReportListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// ReportList is one page of reports.
type ReportList struct {
	Reports []ReportListItem `json:"reports"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// CreateReportRequest is the payload of POST /api/reports.
type CreateReportRequest struct {
	ReportType ReportType `json:"report_type"`
	Title      *string    `json:"title"`
}

// ReportUpdate is a partial update of a report. Only fields present in the
// payload are written.
type ReportUpdate struct {
	Title            Optional[string]       `json:"title"`
	Transcript       Optional[string]       `json:"transcript"`
	CaseNumber       Optional[string]       `json:"case_number"`
	GeneratedContent Optional[string]       `json:"generated_content"`
	FinalContent     Optional[string]       `json:"final_content"`
	Status           Optional[ReportStatus] `json:"status"`
}

// IsEmpty reports whether the update carries no fields.
func (u ReportUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Transcript.Set && !u.CaseNumber.Set &&
		!u.GeneratedContent.Set && !u.FinalContent.Set && !u.Status.Set
}
