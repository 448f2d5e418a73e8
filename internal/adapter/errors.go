package adapter

import "errors"

// Errors mapped from HTTP responses of upstream APIs.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRateLimited         = errors.New("rate limited by upstream")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// Language model errors.
var (
	ErrUnknownLLMProvider = errors.New("unknown language model provider")
	ErrEmptyCompletion    = errors.New("language model returned no content")
)

// Identity errors.
var (
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrVerificationFailed = errors.New("token verification failed")
)

// Billing errors.
var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)
