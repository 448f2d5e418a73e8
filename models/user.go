package models

import "time"

// SubscriptionStatus mirrors the billing provider's subscription status.
// An empty value marks a legacy record created before subscriptions existed.
type SubscriptionStatus string

const (
	SubscriptionTrialing          SubscriptionStatus = "trialing"
	SubscriptionActive            SubscriptionStatus = "active"
	SubscriptionPastDue           SubscriptionStatus = "past_due"
	SubscriptionCanceled          SubscriptionStatus = "canceled"
	SubscriptionUnpaid            SubscriptionStatus = "unpaid"
	SubscriptionIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionIncompleteExpired SubscriptionStatus = "incomplete_expired"
)

// SubscriptionTier distinguishes the paid plans.
type SubscriptionTier string

const (
	TierStandard SubscriptionTier = "standard"
	TierPro      SubscriptionTier = "pro"
)

// TrialPeriod is the length of the free trial that starts at account creation.
const TrialPeriod = 7 * 24 * time.Hour

// User is the local account of an officer. ID is the uid issued by the
// identity provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	JurisdictionState  *string `json:"jurisdiction_state"`
	JurisdictionCounty *string `json:"jurisdiction_county"`

	SubscriptionStatus           SubscriptionStatus `json:"subscription_status"`
	SubscriptionTier             SubscriptionTier   `json:"subscription_tier,omitempty"`
	StripeCustomerID             *string            `json:"-"`
	SubscriptionID               *string            `json:"-"`
	SubscriptionCurrentPeriodEnd *time.Time         `json:"subscription_current_period_end"`
	TrialEndsAt                  *time.Time         `json:"trial_ends_at"`

	// SubscriptionEventAt is the creation time of the newest billing event
	// applied to this user.
	SubscriptionEventAt *time.Time `json:"-"`

	CaseLawInitialized bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasBillingAccount reports whether a billing customer was created for the user.
func (u User) HasBillingAccount() bool {
	return u.StripeCustomerID != nil && *u.StripeCustomerID != ""
}

// Identity is the verified subject of a bearer token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// ProfileUpdate carries the editable account fields. Jurisdiction fields may
// be explicitly cleared with null.
type ProfileUpdate struct {
	Name               Optional[string] `json:"name"`
	JurisdictionState  Optional[string] `json:"jurisdiction_state"`
	JurisdictionCounty Optional[string] `json:"jurisdiction_county"`
}

// IsEmpty reports whether no field was supplied.
func (p ProfileUpdate) IsEmpty() bool {
	return !p.Name.Set && !p.JurisdictionState.Set && !p.JurisdictionCounty.Set
}

// VerifiedUser is the account summary returned after token verification.
type VerifiedUser struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	TrialEndsAt        *time.Time         `json:"trial_ends_at"`
	HasSubscription    bool               `json:"has_subscription"`
}
