// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks client input before it reaches the services.
//
// A Validator dispatches on the concrete request type and validates either
// every field of it or only the named ones. Failures are returned as
// [*InputError] values whose message can be shown to the client.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
