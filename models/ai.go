package models

// ChatRole is the author of a chat message sent to a language model.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of a chat completion conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	Messages    []ChatMessage
	Temperature float32
	MaxTokens   int
	// JSON asks the provider to constrain the output to a JSON object.
	JSON bool
}

// GenerateCheckRequest is the payload of POST /api/generate/check.
type GenerateCheckRequest struct {
	Transcript string     `json:"transcript"`
	ReportType ReportType `json:"report_type"`
}

// FollowUpCheck tells whether a transcript is complete enough to write a
// report from.
type FollowUpCheck struct {
	Ready     bool     `json:"ready"`
	Questions []string `json:"questions,omitempty"`
}

// GenerateReportRequest is the payload of POST /api/generate/report.
type GenerateReportRequest struct {
	ReportID   string `json:"report_id"`
	Transcript string `json:"transcript"`
	Incomplete bool   `json:"incomplete"`
}

// GeneratedReport is the result of report generation.
type GeneratedReport struct {
	ReportID         string `json:"report_id"`
	GeneratedContent string `json:"generated_content"`
	SuggestedTitle   string `json:"suggested_title"`
}

// RefineRequest is the payload of POST /api/generate/refine.
type RefineRequest struct {
	ReportID   string `json:"report_id"`
	Refinement string `json:"refinement"`
}

// RefinedReport is the result of a refinement.
type RefinedReport struct {
	ReportID         string `json:"report_id"`
	GeneratedContent string `json:"generated_content"`
}

// SuggestedCharge is a likely criminal charge supported by a narrative.
type SuggestedCharge struct {
	Charge     string `json:"charge"`
	Statute    string `json:"statute"`
	Level      string `json:"level"`
	Confidence string `json:"confidence"`
}

// ChargeSuggestions is the result of charge suggestion.
type ChargeSuggestions struct {
	Charges []SuggestedCharge `json:"charges"`
}

// MaxSuggestedCharges caps the number of returned charge suggestions.
const MaxSuggestedCharges = 3

// CheckElementsRequest is the payload of POST /api/reports/{id}/check-elements.
type CheckElementsRequest struct {
	Charges []string `json:"charges"`
}

// ElementCheck is the verdict for one statutory element of a charge.
type ElementCheck struct {
	Element    string  `json:"element"`
	Status     string  `json:"status"`
	Evidence   *string `json:"evidence"`
	Suggestion *string `json:"suggestion"`
}

// ChargeAnalysis is the element-by-element review of one charge.
type ChargeAnalysis struct {
	Charge   string         `json:"charge"`
	Elements []ElementCheck `json:"elements"`
	Overall  string         `json:"overall"`
	Summary  string         `json:"summary"`
}

// ElementsAnalysis is the result of an elements check.
type ElementsAnalysis struct {
	Analysis []ChargeAnalysis `json:"analysis"`
}
