package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrEmailRequired is returned on first sight of an identity without an email.
	ErrEmailRequired = errors.New("email is required for registration")

	// ErrNoReportContent is returned when a report has neither final nor
	// generated content to work on.
	ErrNoReportContent = errors.New("report has no content")

	// ErrExampleQuotaExceeded is returned for an upload past the per-type
	// example quota.
	ErrExampleQuotaExceeded = errors.New("example report quota exceeded")

	ErrSessionNotActive = errors.New("court prep session is not active")
	ErrSessionCompleted = errors.New("court prep session already completed")

	ErrBillingDisabled   = errors.New("billing is not configured")
	ErrAlreadySubscribed = errors.New("user already has an active subscription")
	ErrNoBillingAccount  = errors.New("user has no billing account")
)

// AI call outcomes. Both are reported to the client as a bad gateway.
var (
	// ErrAIUnavailable wraps a failed language model call.
	ErrAIUnavailable = errors.New("ai service unavailable")

	// ErrAIInvalidResponse wraps language model output that could not be
	// decoded. The request may be retried.
	ErrAIInvalidResponse = errors.New("ai returned an invalid response")
)
