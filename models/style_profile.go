package models

import "time"

// Voice is the grammatical person a report is written in.
type Voice string

const (
	VoiceFirstPerson Voice = "first_person"
	VoiceThirdPerson Voice = "third_person"
)

// DetailLevel controls how verbose generated reports are.
type DetailLevel string

const (
	DetailLow    DetailLevel = "low"
	DetailMedium DetailLevel = "medium"
	DetailHigh   DetailLevel = "high"
)

// StyleProfile holds the writing preferences of a user for one report type.
type StyleProfile struct {
	ID                    string            `json:"id"`
	UserID                string            `json:"user_id"`
	ReportType            ReportType        `json:"report_type"`
	Voice                 Voice             `json:"voice"`
	DetailLevel           DetailLevel       `json:"detail_level"`
	CommonPhrases         []string          `json:"common_phrases"`
	VocabularyPreferences map[string]string `json:"vocabulary_preferences"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// DefaultStyleProfile returns the profile seeded for new users.
func DefaultStyleProfile(userID string, reportType ReportType) StyleProfile {
	return StyleProfile{
		UserID:                userID,
		ReportType:            reportType,
		Voice:                 VoiceFirstPerson,
		DetailLevel:           DetailMedium,
		CommonPhrases:         []string{},
		VocabularyPreferences: map[string]string{},
	}
}

// StyleProfileUpdate is a partial update of a style profile.
type StyleProfileUpdate struct {
	Voice                 *Voice             `json:"voice"`
	DetailLevel           *DetailLevel       `json:"detail_level"`
	CommonPhrases         *[]string          `json:"common_phrases"`
	VocabularyPreferences *map[string]string `json:"vocabulary_preferences"`
}

// IsEmpty reports whether no field was supplied.
func (u StyleProfileUpdate) IsEmpty() bool {
	return u.Voice == nil && u.DetailLevel == nil && u.CommonPhrases == nil && u.VocabularyPreferences == nil
}

// MaxExamplesPerType is the number of example reports a user may keep per
// report type.
const MaxExamplesPerType = 5

// ExampleReport is a user-supplied exemplar used to imitate writing style.
type ExampleReport struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	ReportType ReportType `json:"report_type"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ExampleReportPreview is the listing projection of an example report.
type ExampleReportPreview struct {
	ID         string     `json:"id"`
	ReportType ReportType `json:"report_type"`
	Preview    string     `json:"preview"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ExampleUploadRequest is the payload of POST /api/profile/examples.
type ExampleUploadRequest struct {
	ReportType ReportType `json:"report_type"`
	Content    string     `json:"content"`
}

// Profile aggregates everything shown on the profile page.
type Profile struct {
	User          User               `json:"user"`
	StyleProfiles []StyleProfile     `json:"styleProfiles"`
	ExampleCounts map[ReportType]int `json:"exampleCounts"`
}
