package models

import "time"

// PolicyDocument is a user-owned reference text: either a department policy
// or a case-law summary.
type PolicyDocument struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content,omitempty"`
	IsCaseLaw bool      `json:"is_case_law"`
	CreatedAt time.Time `json:"created_at"`
}

// PolicyUploadRequest is the payload of POST /api/legal/policy.
type PolicyUploadRequest struct {
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	IsCaseLaw bool   `json:"is_case_law"`
}

// LegalData groups a user's reference documents by kind.
type LegalData struct {
	Policies []PolicyDocument
	CaseLaw  []PolicyDocument
}

// SplitLegalData partitions documents into policies and case law.
func SplitLegalData(docs []PolicyDocument) LegalData {
	var data LegalData
	for _, d := range docs {
		if d.IsCaseLaw {
			data.CaseLaw = append(data.CaseLaw, d)
		} else {
			data.Policies = append(data.Policies, d)
		}
	}
	return data
}

// LegalReferenceType is the kind of a stored legal finding.
type LegalReferenceType string

const (
	ReferenceValidation    LegalReferenceType = "validation"
	ReferenceClarification LegalReferenceType = "clarification"
	ReferenceCaseLaw       LegalReferenceType = "case_law"
)

// LegalReference is one finding of a legal analysis attached to a report.
type LegalReference struct {
	ID              string             `json:"id"`
	ReportID        string             `json:"report_id"`
	UserID          string             `json:"-"`
	ReferenceType   LegalReferenceType `json:"reference_type"`
	Title           string             `json:"title"`
	Citation        *string            `json:"citation"`
	Content         string             `json:"content"`
	ActionValidated *string            `json:"action_validated"`
	CreatedAt       time.Time          `json:"created_at"`
}

// LegalAnalysis is the structured result of the legal reasoning call.
type LegalAnalysis struct {
	Validations        []LegalValidation    `json:"validations"`
	Clarifications     []LegalClarification `json:"clarifications"`
	RelevantReferences []RelevantReference  `json:"relevant_references"`
}

// LegalValidation confirms that an action in the report is legally supported.
type LegalValidation struct {
	Action  string `json:"action"`
	Support string `json:"support"`
	CaseLaw string `json:"case_law"`
	Policy  string `json:"policy"`
}

// LegalClarification points at something the report should explain better.
type LegalClarification struct {
	Issue      string `json:"issue"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// RelevantReference is a case or statute relevant to the report.
type RelevantReference struct {
	Title     string `json:"title"`
	Citation  string `json:"citation"`
	Relevance string `json:"relevance"`
}

// Jurisdiction renders the user's jurisdiction for prompts.
func (u User) Jurisdiction() string {
	state, county := deref(u.JurisdictionState), deref(u.JurisdictionCounty)
	switch {
	case state != "" && county != "":
		return state + ", " + county
	case state != "":
		return state
	case county != "":
		return county
	default:
		return "general US"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
