package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// customerUserMetadataKey links a Stripe customer back to the local user.
const customerUserMetadataKey = "firebase_uid"

type stripeBilling struct {
	api           *client.API
	webhookSecret string
}

// NewStripeBilling returns a [BillingProvider] backed by the Stripe API.
func NewStripeBilling(cfg config.Billing) BillingProvider {
	return newStripeBilling(cfg, nil)
}

func newStripeBilling(cfg config.Billing, backends *stripe.Backends) *stripeBilling {
	api := &client.API{}
	api.Init(cfg.SecretKey, backends)

	return &stripeBilling{api: api, webhookSecret: cfg.WebhookSecret}
}

func (s *stripeBilling) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	params.AddMetadata(customerUserMetadataKey, userID)

	customer, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("creating stripe customer: %w", err)
	}

	return customer.ID, nil
}

func (s *stripeBilling) CreateCheckoutSession(ctx context.Context, p models.CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(p.CustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(p.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}

	return session.URL, nil
}

func (s *stripeBilling) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := s.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("creating portal session: %w", err)
	}

	return session.URL, nil
}

func (s *stripeBilling) GetSubscription(ctx context.Context, subscriptionID string) (models.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := s.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("fetching subscription %s: %w", subscriptionID, err)
	}

	return toSubscription(sub), nil
}

func (s *stripeBilling) ParseWebhook(payload []byte, signature string) (models.BillingEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return models.BillingEvent{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	out := models.BillingEvent{
		ID:      event.ID,
		Type:    models.BillingEventType(event.Type),
		Created: time.Unix(event.Created, 0).UTC(),
	}
	if event.Data == nil {
		return out, nil
	}

	switch out.Type {
	case models.EventCheckoutCompleted:
		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return out, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		if session.Customer != nil {
			out.CustomerID = session.Customer.ID
		}
		if session.Subscription != nil {
			out.SubscriptionID = session.Subscription.ID
		}
	case models.EventSubscriptionUpdated, models.EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err = json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return out, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		converted := toSubscription(&sub)
		out.CustomerID = converted.CustomerID
		out.SubscriptionID = converted.ID
		out.Status = converted.Status
		out.CurrentPeriodEnd = converted.CurrentPeriodEnd
		out.PriceID = converted.PriceID
	case models.EventInvoicePaymentFailed:
		var invoice stripe.Invoice
		if err = json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return out, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		if invoice.Customer != nil {
			out.CustomerID = invoice.Customer.ID
		}
		if invoice.Subscription != nil {
			out.SubscriptionID = invoice.Subscription.ID
		}
	}

	return out, nil
}

func toSubscription(sub *stripe.Subscription) models.Subscription {
	out := models.Subscription{
		ID:     sub.ID,
		Status: models.SubscriptionStatus(sub.Status),
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		out.CurrentPeriodEnd = &end
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		out.PriceID = sub.Items.Data[0].Price.ID
	}

	return out
}
