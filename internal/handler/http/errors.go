// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the HTTP layer. Callers can match against them with
// [errors.Is].
var (
	// ErrNoServices is returned by [NewHandler] when the service set is nil.
	ErrNoServices = errors.New("http handler requires services")

	// ErrNoTokenVerifier is returned by [NewHandler] when no bearer token
	// verifier is configured.
	ErrNoTokenVerifier = errors.New("http handler requires a token verifier")

	// errNoUserInContext is logged when a protected handler runs without the
	// auth middleware in front of it.
	errNoUserInContext = errors.New("no authenticated user in request context")
)
