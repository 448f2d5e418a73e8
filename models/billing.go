package models

import "time"

// BillingEventType is the type of billing provider webhook event.
type BillingEventType string

const (
	EventCheckoutCompleted    BillingEventType = "checkout.session.completed"
	EventSubscriptionUpdated  BillingEventType = "customer.subscription.updated"
	EventSubscriptionDeleted  BillingEventType = "customer.subscription.deleted"
	EventInvoicePaymentFailed BillingEventType = "invoice.payment_failed"
)

// BillingEvent is a verified webhook event reduced to the fields used for
// reconciliation.
type BillingEvent struct {
	ID         string
	Type       BillingEventType
	Created    time.Time
	CustomerID string

	// Subscription data, present for checkout and subscription events.
	SubscriptionID   string
	Status           SubscriptionStatus
	CurrentPeriodEnd *time.Time
	PriceID          string
}

// Subscription is the billing provider's view of a subscription.
type Subscription struct {
	ID               string
	CustomerID       string
	Status           SubscriptionStatus
	CurrentPeriodEnd *time.Time
	PriceID          string
}

// SubscriptionUpdate is a partial update of a user's subscription fields,
// applied only if EventAt is not older than the last applied event.
type SubscriptionUpdate struct {
	Status           *SubscriptionStatus
	Tier             *SubscriptionTier
	CustomerID       *string
	SubscriptionID   Optional[string]
	CurrentPeriodEnd Optional[time.Time]
	EventAt          time.Time
}

// CheckoutRequest is the payload of POST /api/stripe/create-checkout-session.
type CheckoutRequest struct {
	Plan SubscriptionTier `json:"plan"`
}

// CheckoutParams describes a subscription checkout to open.
type CheckoutParams struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// BillingURL is the response of the checkout and portal endpoints.
type BillingURL struct {
	URL string `json:"url"`
}
