package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// Access is the result of evaluating a user's subscription.
type Access struct {
	// Subscribed grants the AI features.
	Subscribed bool
	// Pro additionally grants court preparation.
	Pro bool
}

// HasAccess reports whether u may use the subscription features at now.
// Active and past-due subscriptions keep access; trials last until
// TrialEndsAt, or TrialPeriod after account creation when it is unset.
func HasAccess(u models.User, now time.Time) bool {
	switch u.SubscriptionStatus {
	case models.SubscriptionActive, models.SubscriptionPastDue:
		return true
	case models.SubscriptionTrialing:
		return now.Before(trialEnd(u))
	case "":
		return now.Before(u.CreatedAt.Add(models.TrialPeriod))
	default:
		return false
	}
}

// HasProAccess reports whether u may use the pro features at now. Trials
// include the pro tier. Without a configured pro plan every paying
// subscriber is pro.
func HasProAccess(u models.User, now time.Time, proPlanConfigured bool) bool {
	if !HasAccess(u, now) {
		return false
	}

	switch u.SubscriptionStatus {
	case models.SubscriptionActive, models.SubscriptionPastDue:
		return !proPlanConfigured || u.SubscriptionTier == models.TierPro
	default:
		return true
	}
}

func trialEnd(u models.User) time.Time {
	if u.TrialEndsAt != nil {
		return *u.TrialEndsAt
	}
	return u.CreatedAt.Add(models.TrialPeriod)
}

type accessService struct {
	users             store.UserRepository
	proPlanConfigured bool
	now               func() time.Time
}

func NewAccessService(users store.UserRepository, proPlanConfigured bool) AccessService {
	return &accessService{
		users:             users,
		proPlanConfigured: proPlanConfigured,
		now:               time.Now,
	}
}

func (s *accessService) Evaluate(ctx context.Context, userID string) (Access, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accessService.Evaluate").Msg("failed to load user")
		return Access{}, fmt.Errorf("failed to load user for access check: %w", err)
	}

	now := s.now()
	return Access{
		Subscribed: HasAccess(user, now),
		Pro:        HasProAccess(user, now, s.proPlanConfigured),
	}, nil
}
