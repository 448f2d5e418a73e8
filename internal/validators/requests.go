package validators

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/MKhiriev/report-buddy/models"
)

const (
	FieldReportType            = "report_type"
	FieldReportID              = "report_id"
	FieldSessionID             = "session_id"
	FieldTitle                 = "title"
	FieldTranscript            = "transcript"
	FieldCaseNumber            = "case_number"
	FieldGeneratedContent      = "generated_content"
	FieldFinalContent          = "final_content"
	FieldStatus                = "status"
	FieldPage                  = "page"
	FieldLimit                 = "limit"
	FieldRefinement            = "refinement"
	FieldCharges               = "charges"
	FieldFilename              = "filename"
	FieldContent               = "content"
	FieldName                  = "name"
	FieldJurisdictionState     = "jurisdiction_state"
	FieldJurisdictionCounty    = "jurisdiction_county"
	FieldVoice                 = "voice"
	FieldDetailLevel           = "detail_level"
	FieldCommonPhrases         = "common_phrases"
	FieldVocabularyPreferences = "vocabulary_preferences"
	FieldMessage               = "message"
	FieldPlan                  = "plan"
	FieldUpdates               = "updates"
)

const (
	MaxTitleLength            = 200
	MaxTranscriptLength       = 50000
	MaxCaseNumberLength       = 50
	MaxReportContentLength    = 100000
	MaxRefinementLength       = 10000
	MaxCharges                = 10
	MaxChargeLength           = 200
	MaxFilenameLength         = 200
	MaxPolicyContentLength    = 100000
	MaxExampleContentLength   = 50000
	MaxNameLength             = 100
	MaxJurisdictionState      = 50
	MaxJurisdictionCounty     = 100
	MaxCourtPrepMessageLength = 5000
	MaxPageLimit              = 100
	MaxPhraseLength           = 500
)

var (
	reportTypes   = []any{models.ReportIncident, models.ReportArrest, models.ReportSupplemental}
	reportStatues = []any{models.ReportDraft, models.ReportCompleted}
	voices        = []any{models.VoiceFirstPerson, models.VoiceThirdPerson}
	detailLevels  = []any{models.DetailLow, models.DetailMedium, models.DetailHigh}
	plans         = []any{models.TierStandard, models.TierPro}
)

var (
	reportTypeRule   = validation.In(reportTypes...).Error("Invalid report_type. Must be incident, arrest, or supplemental")
	reportStatusRule = validation.In(reportStatues...).Error("Invalid status. Must be draft or completed")
	requiredReportID = validation.Required.Error("report_id is required")
)

// RequestValidator validates the JSON payloads and query parameters of the
// public API.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateReportRequest:
		return v.validateCreateReport(value, fields...)
	case *models.CreateReportRequest:
		return v.validateCreateReport(*value, fields...)

	case models.ReportUpdate:
		return v.validateReportUpdate(value, fields...)
	case *models.ReportUpdate:
		return v.validateReportUpdate(*value, fields...)

	case models.ReportListFilter:
		return v.validateReportListFilter(value, fields...)

	case models.GenerateCheckRequest:
		return v.validateGenerateCheck(value, fields...)
	case models.GenerateReportRequest:
		return v.validateGenerateReport(value, fields...)
	case models.RefineRequest:
		return v.validateRefine(value, fields...)
	case models.CheckElementsRequest:
		return v.validateCheckElements(value, fields...)

	case models.PolicyUploadRequest:
		return v.validatePolicyUpload(value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value, fields...)
	case models.StyleProfileUpdate:
		return v.validateStyleUpdate(value, fields...)
	case models.ExampleUploadRequest:
		return v.validateExampleUpload(value, fields...)

	case models.CourtPrepStartRequest:
		return v.validateCourtPrepStart(value, fields...)
	case models.CourtPrepMessageRequest:
		return v.validateCourtPrepMessage(value, fields...)
	case models.CourtPrepSessionRequest:
		return v.validateCourtPrepSession(value, fields...)

	case models.CheckoutRequest:
		return v.validateCheckout(value, fields...)

	case models.ReportType:
		return check(FieldReportType, value, validation.Required.Error("Invalid report type. Must be incident, arrest, or supplemental"), reportTypeRule)

	default:
		return ErrUnsupportedType
	}
}

// check runs rules against one value and tags a failure with field.
func check(field string, value any, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return invalid(field, err)
	}
	return nil
}

// walk calls fn for the requested fields, or for defaults when none were
// requested, and stops at the first failure.
func walk(fields, defaults []string, fn func(field string) error) error {
	if len(fields) == 0 {
		fields = defaults
	}
	for _, f := range fields {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *RequestValidator) validateCreateReport(r models.CreateReportRequest, fields ...string) error {
	return walk(fields, []string{FieldReportType, FieldTitle}, func(f string) error {
		switch f {
		case FieldReportType:
			return check(f, r.ReportType, validation.Required.Error("Valid report_type required (incident, arrest, supplemental)"), reportTypeRule)
		case FieldTitle:
			return check(f, r.Title, validation.Length(0, MaxTitleLength).Error("Title must be 200 characters or less"))
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateReportUpdate(u models.ReportUpdate, fields ...string) error {
	defaults := []string{FieldUpdates, FieldStatus, FieldTitle, FieldTranscript, FieldCaseNumber, FieldGeneratedContent, FieldFinalContent}

	return walk(fields, defaults, func(f string) error {
		switch f {
		case FieldUpdates:
			if u.IsEmpty() {
				return invalid(f, ErrNoUpdates)
			}
			return nil
		case FieldStatus:
			if u.Status.Set && u.Status.Value == nil {
				return invalid(f, errors.New("Invalid status. Must be draft or completed"))
			}
			return check(f, u.Status.Value, reportStatusRule)
		case FieldTitle:
			return check(f, u.Title.Value, validation.Length(0, MaxTitleLength).Error("Title must be 200 characters or less"))
		case FieldTranscript:
			return check(f, u.Transcript.Value, validation.Length(0, MaxTranscriptLength).Error("Transcript must be 50,000 characters or less"))
		case FieldCaseNumber:
			return check(f, u.CaseNumber.Value, validation.Length(0, MaxCaseNumberLength).Error("Case number must be 50 characters or less"))
		case FieldGeneratedContent:
			return check(f, u.GeneratedContent.Value, validation.Length(0, MaxReportContentLength).Error("Generated content must be 100,000 characters or less"))
		case FieldFinalContent:
			return check(f, u.FinalContent.Value, validation.Length(0, MaxReportContentLength).Error("Final content must be 100,000 characters or less"))
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateReportListFilter(filter models.ReportListFilter, fields ...string) error {
	return walk(fields, []string{FieldPage, FieldLimit, FieldStatus}, func(f string) error {
		switch f {
		case FieldPage:
			return check(f, filter.Page,
				validation.Required.Error("page and limit must be positive integers"),
				validation.Min(1).Error("page and limit must be positive integers"),
			)
		case FieldLimit:
			return check(f, filter.Limit,
				validation.Required.Error("page and limit must be positive integers"),
				validation.Min(1).Error("page and limit must be positive integers"),
				validation.Max(MaxPageLimit).Error("limit must be 100 or less"),
			)
		case FieldStatus:
			return check(f, filter.Status, reportStatusRule)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateGenerateCheck(r models.GenerateCheckRequest, fields ...string) error {
	return walk(fields, []string{FieldTranscript, FieldReportType}, func(f string) error {
		switch f {
		case FieldTranscript:
			return check(f, r.Transcript,
				validation.Required.Error("transcript and report_type required"),
				validation.Length(0, MaxTranscriptLength).Error("Transcript must be 50,000 characters or less"),
			)
		case FieldReportType:
			return check(f, r.ReportType, validation.Required.Error("transcript and report_type required"), reportTypeRule)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateGenerateReport(r models.GenerateReportRequest, fields ...string) error {
	return walk(fields, []string{FieldReportID, FieldTranscript}, func(f string) error {
		switch f {
		case FieldReportID:
			return check(f, r.ReportID, validation.Required.Error("report_id and transcript required"))
		case FieldTranscript:
			return check(f, r.Transcript,
				validation.Required.Error("report_id and transcript required"),
				validation.Length(0, MaxTranscriptLength).Error("Transcript must be 50,000 characters or less"),
			)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateRefine(r models.RefineRequest, fields ...string) error {
	return walk(fields, []string{FieldReportID, FieldRefinement}, func(f string) error {
		switch f {
		case FieldReportID:
			return check(f, r.ReportID, validation.Required.Error("report_id and refinement required"))
		case FieldRefinement:
			return check(f, r.Refinement,
				validation.Required.Error("report_id and refinement required"),
				validation.Length(0, MaxRefinementLength).Error("Refinement must be 10,000 characters or less"),
			)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateCheckElements(r models.CheckElementsRequest, fields ...string) error {
	return walk(fields, []string{FieldCharges}, func(f string) error {
		if f != FieldCharges {
			return ErrUnknownField
		}
		if err := check(f, r.Charges,
			validation.Required.Error("charges array required"),
			validation.Length(0, MaxCharges).Error("Maximum 10 charges allowed"),
		); err != nil {
			return err
		}
		msg := "Each charge must be a string of 200 characters or less"
		for _, charge := range r.Charges {
			if err := check(f, charge, validation.Required.Error(msg), validation.Length(0, MaxChargeLength).Error(msg)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (v *RequestValidator) validatePolicyUpload(r models.PolicyUploadRequest, fields ...string) error {
	return walk(fields, []string{FieldFilename, FieldContent}, func(f string) error {
		switch f {
		case FieldFilename:
			return check(f, r.Filename,
				validation.Required.Error("filename and content required"),
				validation.Length(0, MaxFilenameLength).Error("Filename must be 200 characters or less"),
			)
		case FieldContent:
			return check(f, r.Content,
				validation.Required.Error("filename and content required"),
				validation.Length(0, MaxPolicyContentLength).Error("Policy content must be 100,000 characters or less"),
			)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateProfileUpdate(u models.ProfileUpdate, fields ...string) error {
	defaults := []string{FieldUpdates, FieldName, FieldJurisdictionState, FieldJurisdictionCounty}

	return walk(fields, defaults, func(f string) error {
		switch f {
		case FieldUpdates:
			if u.IsEmpty() {
				return invalid(f, ErrNoUpdates)
			}
			return nil
		case FieldName:
			if !u.Name.Set {
				return nil
			}
			msg := "Name must be a string between 1 and 100 characters"
			if u.Name.Value == nil {
				return invalid(f, errors.New(msg))
			}
			return check(f, *u.Name.Value, validation.Required.Error(msg), validation.Length(1, MaxNameLength).Error(msg))
		case FieldJurisdictionState:
			return check(f, u.JurisdictionState.Value, validation.Length(0, MaxJurisdictionState).Error("Jurisdiction state must be a string of 50 characters or less"))
		case FieldJurisdictionCounty:
			return check(f, u.JurisdictionCounty.Value, validation.Length(0, MaxJurisdictionCounty).Error("Jurisdiction county must be a string of 100 characters or less"))
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateStyleUpdate(u models.StyleProfileUpdate, fields ...string) error {
	defaults := []string{FieldUpdates, FieldVoice, FieldDetailLevel, FieldCommonPhrases}

	return walk(fields, defaults, func(f string) error {
		switch f {
		case FieldUpdates:
			if u.IsEmpty() {
				return invalid(f, ErrNoStyleUpdates)
			}
			return nil
		case FieldVoice:
			return check(f, u.Voice, validation.In(voices...).Error("Invalid voice. Must be first_person or third_person"))
		case FieldDetailLevel:
			return check(f, u.DetailLevel, validation.In(detailLevels...).Error("Invalid detail_level. Must be low, medium, or high"))
		case FieldCommonPhrases:
			if u.CommonPhrases == nil {
				return nil
			}
			for _, phrase := range *u.CommonPhrases {
				if err := check(f, phrase, validation.Length(0, MaxPhraseLength).Error("Each phrase must be 500 characters or less")); err != nil {
					return err
				}
			}
			return nil
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateExampleUpload(r models.ExampleUploadRequest, fields ...string) error {
	return walk(fields, []string{FieldReportType, FieldContent}, func(f string) error {
		switch f {
		case FieldReportType:
			return check(f, r.ReportType, validation.Required.Error("report_type and content required"), reportTypeRule)
		case FieldContent:
			return check(f, r.Content,
				validation.Required.Error("report_type and content required"),
				validation.Length(0, MaxExampleContentLength).Error("Content must be 50,000 characters or less"),
			)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateCourtPrepStart(r models.CourtPrepStartRequest, fields ...string) error {
	return walk(fields, []string{FieldReportID}, func(f string) error {
		if f != FieldReportID {
			return ErrUnknownField
		}
		return check(f, r.ReportID, requiredReportID)
	})
}

func (v *RequestValidator) validateCourtPrepMessage(r models.CourtPrepMessageRequest, fields ...string) error {
	required := "report_id, session_id, and message are required"

	return walk(fields, []string{FieldReportID, FieldSessionID, FieldMessage}, func(f string) error {
		switch f {
		case FieldReportID:
			return check(f, r.ReportID, validation.Required.Error(required))
		case FieldSessionID:
			return check(f, r.SessionID, validation.Required.Error(required))
		case FieldMessage:
			return check(f, r.Message,
				validation.Required.Error(required),
				validation.RuneLength(0, MaxCourtPrepMessageLength).Error("Message too long (max 5000 characters)"),
			)
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateCourtPrepSession(r models.CourtPrepSessionRequest, fields ...string) error {
	required := "report_id and session_id are required"

	return walk(fields, []string{FieldReportID, FieldSessionID}, func(f string) error {
		switch f {
		case FieldReportID:
			return check(f, r.ReportID, validation.Required.Error(required))
		case FieldSessionID:
			return check(f, r.SessionID, validation.Required.Error(required))
		default:
			return ErrUnknownField
		}
	})
}

func (v *RequestValidator) validateCheckout(r models.CheckoutRequest, fields ...string) error {
	return walk(fields, []string{FieldPlan}, func(f string) error {
		if f != FieldPlan {
			return ErrUnknownField
		}
		return check(f, r.Plan, validation.In(plans...).Error("Invalid plan. Must be standard or pro"))
	})
}
