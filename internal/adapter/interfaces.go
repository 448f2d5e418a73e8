// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the services to the external systems the server
// depends on: the language model provider, the billing provider and the
// identity provider.
//
// Each concern is expressed as a small interface so that services can be
// tested against the gomock doubles generated into internal/mock. Errors
// returned by the implementations are mapped onto the sentinel values in
// errors.go so that callers can use [errors.Is] without knowing which
// provider is configured.
package adapter

import (
	"context"

	"github.com/MKhiriev/report-buddy/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ChatCompleter sends a chat conversation to a language model and returns
// the text of the first completion choice.
type ChatCompleter interface {
	Complete(ctx context.Context, req models.ChatRequest) (string, error)
}

// BillingProvider manages customers and subscriptions at the payment
// processor.
type BillingProvider interface {
	// CreateCustomer registers a customer for the user and returns its id.
	CreateCustomer(ctx context.Context, email, userID string) (string, error)

	// CreateCheckoutSession opens a hosted subscription checkout and returns
	// its URL.
	CreateCheckoutSession(ctx context.Context, params models.CheckoutParams) (string, error)

	// CreatePortalSession opens the hosted customer portal and returns its URL.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)

	// GetSubscription fetches the current state of a subscription.
	GetSubscription(ctx context.Context, subscriptionID string) (models.Subscription, error)

	// ParseWebhook verifies the signature of a webhook payload and decodes
	// it. A bad signature yields [ErrInvalidSignature].
	ParseWebhook(payload []byte, signature string) (models.BillingEvent, error)
}

// TokenVerifier verifies a bearer token issued by the identity provider.
// Failures are reported as [ErrTokenExpired], [ErrInvalidToken] or
// [ErrVerificationFailed].
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}
