package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// billingService opens checkout and portal sessions and reconciles billing
// events with local subscriptions. Events are applied in the order they were
// created by the provider, not in arrival order.
type billingService struct {
	users    store.UserRepository
	provider adapter.BillingProvider

	priceID    string
	proPriceID string
	successURL string
	cancelURL  string
	returnURL  string
}

// NewBillingService returns a BillingService. A nil provider disables
// billing; every operation then fails with ErrBillingDisabled.
func NewBillingService(users store.UserRepository, provider adapter.BillingProvider, cfg config.Billing, frontendURL string) BillingService {
	base := strings.TrimRight(frontendURL, "/")

	return &billingService{
		users:      users,
		provider:   provider,
		priceID:    cfg.PriceID,
		proPriceID: cfg.ProPriceID,
		successURL: orDefault(cfg.SuccessURL, base+"/?subscription=success"),
		cancelURL:  orDefault(cfg.CancelURL, base+"/?subscription=canceled"),
		returnURL:  orDefault(cfg.ReturnURL, base+"/"),
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, userID string, req models.CheckoutRequest) (models.BillingURL, error) {
	if s.provider == nil {
		return models.BillingURL{}, ErrBillingDisabled
	}
	log := logger.FromContext(ctx)

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.BillingURL{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user.SubscriptionStatus == models.SubscriptionActive && user.SubscriptionID != nil && *user.SubscriptionID != "" {
		return models.BillingURL{}, ErrAlreadySubscribed
	}

	customerID, err := s.customer(ctx, user)
	if err != nil {
		return models.BillingURL{}, err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, models.CheckoutParams{
		CustomerID: customerID,
		PriceID:    s.price(req.Plan),
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		log.Err(err).Str("func", "*billingService.CreateCheckout").Msg("failed to create checkout session")
		return models.BillingURL{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return models.BillingURL{URL: url}, nil
}

// customer returns the billing customer of the user, creating it on first
// checkout.
func (s *billingService) customer(ctx context.Context, user models.User) (string, error) {
	if user.HasBillingAccount() {
		return *user.StripeCustomerID, nil
	}

	customerID, err := s.provider.CreateCustomer(ctx, user.Email, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to create billing customer: %w", err)
	}
	if err = s.users.SetCustomerID(ctx, user.ID, customerID); err != nil {
		return "", fmt.Errorf("failed to store billing customer: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID).Msg("billing customer created")
	return customerID, nil
}

func (s *billingService) price(plan models.SubscriptionTier) string {
	if plan == models.TierPro && s.proPriceID != "" {
		return s.proPriceID
	}
	return s.priceID
}

func (s *billingService) CreatePortal(ctx context.Context, userID string) (models.BillingURL, error) {
	if s.provider == nil {
		return models.BillingURL{}, ErrBillingDisabled
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.BillingURL{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasBillingAccount() {
		return models.BillingURL{}, ErrNoBillingAccount
	}

	url, err := s.provider.CreatePortalSession(ctx, *user.StripeCustomerID, s.returnURL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*billingService.CreatePortal").Msg("failed to create portal session")
		return models.BillingURL{}, fmt.Errorf("failed to create portal session: %w", err)
	}

	return models.BillingURL{URL: url}, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.provider == nil {
		return ErrBillingDisabled
	}
	log := logger.FromContext(ctx)

	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		log.Err(err).Str("func", "*billingService.HandleWebhook").Msg("rejected billing event")
		return err
	}

	log = log.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("event_id", event.ID).Str("event_type", string(event.Type))
	})

	if err = s.reconcile(log.WithContext(ctx), event); err != nil {
		log.Err(err).Msg("failed to process billing event")
	}
	return nil
}

// reconcile applies event to the subscription of its customer. Events of
// unknown customers and events older than the last applied one are
// ignored.
func (s *billingService) reconcile(ctx context.Context, event models.BillingEvent) error {
	log := logger.FromContext(ctx)

	if event.CustomerID == "" {
		log.Debug().Msg("billing event without customer ignored")
		return nil
	}

	user, err := s.users.FindUserByCustomerID(ctx, event.CustomerID)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Info().Str("customer_id", event.CustomerID).Msg("billing event for unknown customer ignored")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find user by customer: %w", err)
	}

	update, ok, err := s.updateFor(ctx, event)
	if err != nil || !ok {
		return err
	}

	applied, err := s.users.ApplySubscriptionUpdate(ctx, user.ID, update)
	if err != nil {
		return fmt.Errorf("failed to apply subscription update: %w", err)
	}
	if !applied {
		log.Info().Str("user_id", user.ID).Msg("stale billing event skipped")
		return nil
	}

	log.Info().Str("user_id", user.ID).Msg("subscription updated")
	return nil
}

// updateFor translates an event into a subscription update. The second
// value is false for events that change nothing.
func (s *billingService) updateFor(ctx context.Context, event models.BillingEvent) (models.SubscriptionUpdate, bool, error) {
	update := models.SubscriptionUpdate{EventAt: event.Created}

	switch event.Type {
	case models.EventCheckoutCompleted:
		status := models.SubscriptionActive
		customerID := event.CustomerID
		update.Status = &status
		update.CustomerID = &customerID

		if event.SubscriptionID == "" {
			return update, true, nil
		}
		update.SubscriptionID = models.Some(event.SubscriptionID)

		sub, err := s.provider.GetSubscription(ctx, event.SubscriptionID)
		if err != nil {
			return update, false, fmt.Errorf("failed to fetch subscription: %w", err)
		}
		if sub.Status != "" {
			update.Status = &sub.Status
		}
		if sub.CurrentPeriodEnd != nil {
			update.CurrentPeriodEnd = models.Some(*sub.CurrentPeriodEnd)
		}
		tier := s.tier(sub.PriceID)
		update.Tier = &tier

	case models.EventSubscriptionUpdated:
		status := event.Status
		update.Status = &status
		if event.CurrentPeriodEnd != nil {
			update.CurrentPeriodEnd = models.Some(*event.CurrentPeriodEnd)
		}
		tier := s.tier(event.PriceID)
		update.Tier = &tier

	case models.EventSubscriptionDeleted:
		status := models.SubscriptionCanceled
		update.Status = &status
		update.SubscriptionID = models.Null[string]()
		update.CurrentPeriodEnd = models.Null[time.Time]()

	case models.EventInvoicePaymentFailed:
		status := models.SubscriptionPastDue
		update.Status = &status

	default:
		return update, false, nil
	}

	return update, true, nil
}

func (s *billingService) tier(priceID string) models.SubscriptionTier {
	if s.proPriceID != "" && priceID == s.proPriceID {
		return models.TierPro
	}
	return models.TierStandard
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
