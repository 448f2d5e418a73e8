package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/report-buddy/internal/caselaw"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// userService resolves identities to accounts. New accounts start a trial
// and receive default style profiles and a copy of the case-law dataset.
type userService struct {
	users   store.UserRepository
	caseLaw *caselaw.Dataset
	ids     IDGenerator
	now     func() time.Time
}

func NewUserService(users store.UserRepository, caseLaw *caselaw.Dataset, ids IDGenerator) UserService {
	return &userService{
		users:   users,
		caseLaw: caseLaw,
		ids:     ids,
		now:     time.Now,
	}
}

func (s *userService) Resolve(ctx context.Context, identity models.Identity) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetUser(ctx, identity.UID)
	switch {
	case err == nil:
		return s.ensureCaseLaw(ctx, user), nil
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*userService.Resolve").Msg("failed to load user")
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if identity.Email == "" {
		return models.User{}, ErrEmailRequired
	}

	trialEndsAt := s.now().Add(models.TrialPeriod)
	newUser := models.User{
		ID:                 identity.UID,
		Email:              identity.Email,
		Name:               displayName(identity),
		SubscriptionStatus: models.SubscriptionTrialing,
		TrialEndsAt:        &trialEndsAt,
	}

	created, err := s.users.CreateUser(ctx, newUser, s.seed(identity.UID))
	if errors.Is(err, store.ErrUserAlreadyExists) {
		return s.users.GetUser(ctx, identity.UID)
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.Resolve").Msg("failed to create user")
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// ensureCaseLaw seeds accounts created before case law was copied on
// creation. Failures are logged and the account is returned as is.
func (s *userService) ensureCaseLaw(ctx context.Context, user models.User) models.User {
	if user.CaseLawInitialized || s.caseLaw == nil {
		return user
	}

	seeded, err := s.users.SeedCaseLaw(ctx, user.ID, s.caseLaw.Documents(user.ID, s.ids.Generate))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ensureCaseLaw").Str("user_id", user.ID).Msg("failed to seed case law")
		return user
	}
	user.CaseLawInitialized = true
	if seeded {
		logger.FromContext(ctx).Info().Str("user_id", user.ID).Msg("case law seeded for existing user")
	}
	return user
}

func (s *userService) seed(userID string) store.UserSeed {
	var seed store.UserSeed
	for _, rt := range models.ReportTypes {
		profile := models.DefaultStyleProfile(userID, rt)
		profile.ID = s.ids.Generate()
		seed.StyleProfiles = append(seed.StyleProfiles, profile)
	}
	if s.caseLaw != nil {
		seed.CaseLaw = s.caseLaw.Documents(userID, s.ids.Generate)
	}
	return seed
}

func (s *userService) Verify(ctx context.Context, userID string) (models.VerifiedUser, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.VerifiedUser{}, fmt.Errorf("failed to load user: %w", err)
	}

	if user.SubscriptionStatus == "" {
		user, err = s.users.BackfillTrial(ctx, userID, user.CreatedAt.Add(models.TrialPeriod))
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*userService.Verify").Msg("failed to backfill trial")
			return models.VerifiedUser{}, fmt.Errorf("failed to backfill trial: %w", err)
		}
	}

	return models.VerifiedUser{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		SubscriptionStatus: user.SubscriptionStatus,
		TrialEndsAt:        user.TrialEndsAt,
		HasSubscription:    HasAccess(user, s.now()),
	}, nil
}

// displayName falls back to the local part of the email.
func displayName(identity models.Identity) string {
	if name := strings.TrimSpace(identity.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(identity.Email, "@")
	return local
}
