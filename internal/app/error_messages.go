// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// report-buddy server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. The web
// client matches on some of them, so the wording is part of the API.
package app

// Authentication.
const (
	// MsgAccessTokenRequired is returned when the Authorization header is
	// missing or does not carry a bearer token.
	MsgAccessTokenRequired = "Access token required"

	// MsgTokenExpired is returned for a well-formed token past its expiry.
	MsgTokenExpired = "Token expired"

	// MsgInvalidToken is returned for a malformed token or a bad signature.
	MsgInvalidToken = "Invalid token"

	// MsgAuthenticationFailed is returned when the token could not be
	// verified for any other reason.
	MsgAuthenticationFailed = "Authentication failed"

	// MsgEmailRequired is returned on first sight of an identity without an
	// email address.
	MsgEmailRequired = "Email is required for registration"

	MsgAuthenticationSuccessful = "Authentication successful"
	MsgProfileUpdated           = "Profile updated"
)

// Subscription gates.
const (
	MsgSubscriptionRequired       = "Subscription required"
	MsgProSubscriptionRequired    = "Pro subscription required"
	MsgFailedToVerifySubscription = "Failed to verify subscription"
	MsgUserNotFound               = "User not found"

	// CodeSubscriptionRequired and CodeProRequired are the machine-readable
	// codes of gate rejections.
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
	CodeProRequired          = "PRO_REQUIRED"
)

// Generic transport failures.
const (
	MsgInvalidJSON         = "Invalid JSON was passed"
	MsgTooManyRequests     = "Too many requests, please try again later."
	MsgTooManyAuthAttempts = "Too many authentication attempts, please try again later"
	MsgInternalServerError = "Internal server error"
	MsgRequestBodyTooLarge = "Request body too large"
	MsgInvalidQueryParams  = "page and limit must be positive integers"
)

// Reports and generation.
const (
	MsgReportNotFound          = "Report not found"
	MsgReportDeleted           = "Report deleted"
	MsgNoContentToAnalyze      = "No report content to analyze"
	MsgNoContentToRefine       = "No report content to refine"
	MsgReportHasNoContent      = "Report has no content to analyze"
	MsgFailedToCreateReport    = "Failed to create report"
	MsgFailedToGetReports      = "Failed to get reports"
	MsgFailedToGetReport       = "Failed to get report"
	MsgFailedToUpdateReport    = "Failed to update report"
	MsgFailedToDeleteReport    = "Failed to delete report"
	MsgFailedToSuggestCharges  = "Failed to suggest charges"
	MsgFailedToCheckElements   = "Failed to check elements"
	MsgFailedToCheckTranscript = "Failed to check transcript"
	MsgFailedToGenerateReport  = "Failed to generate report"
	MsgFailedToRefineReport    = "Failed to refine report"
)

// Language model outcomes.
const (
	MsgAIUnavailable     = "AI service unavailable"
	MsgAIInvalidResponse = "AI returned an invalid response, please try again"
)

// Legal.
const (
	MsgPolicyNotFound        = "Policy not found"
	MsgPolicyDeleted         = "Policy deleted"
	MsgFailedToAnalyzeReport = "Failed to analyze report"
	MsgFailedToUploadPolicy  = "Failed to upload policy"
	MsgFailedToGetPolicies   = "Failed to get policies"
	MsgFailedToDeletePolicy  = "Failed to delete policy"
)

// Profile.
const (
	MsgExampleNotFound       = "Example not found"
	MsgExampleDeleted        = "Example deleted"
	MsgExampleQuotaExceeded  = "Maximum 5 examples per report type. Delete one first."
	MsgStyleProfileNotFound  = "Style profile not found"
	MsgFailedToGetProfile    = "Failed to get profile"
	MsgFailedToUpdateProfile = "Failed to update profile"
	MsgFailedToUpdateStyle   = "Failed to update style profile"
	MsgFailedToUploadExample = "Failed to upload example"
	MsgFailedToGetExamples   = "Failed to get examples"
	MsgFailedToDeleteExample = "Failed to delete example"
)

// Court prep.
const (
	MsgSessionNotFound         = "Session not found"
	MsgSessionNotActive        = "Session is not active"
	MsgSessionAlreadyCompleted = "Session already completed"
	MsgFailedToStartSession    = "Failed to start court prep session"
	MsgFailedToProcessMessage  = "Failed to process message"
	MsgFailedToGenerateDebrief = "Failed to generate debrief"
	MsgFailedToEndSession      = "Failed to end session"
	MsgFailedToGetSession      = "Failed to get session"
)

// Billing.
const (
	MsgBillingNotConfigured    = "Billing is not configured"
	MsgAlreadySubscribed       = "You already have an active subscription"
	MsgNoBillingAccount        = "No billing account found"
	MsgInvalidWebhookSignature = "Webhook signature verification failed"
	MsgInvalidWebhookPayload   = "Invalid webhook payload"
	MsgFailedToCreateCheckout  = "Failed to create checkout session"
	MsgFailedToCreatePortal    = "Failed to create portal session"
)
