package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

type profileService struct {
	users  store.UserRepository
	styles store.StyleRepository
	ids    IDGenerator
}

func NewProfileService(users store.UserRepository, styles store.StyleRepository, ids IDGenerator) ProfileService {
	return &profileService{
		users:  users,
		styles: styles,
		ids:    ids,
	}
}

// GetProfile loads the account, its style profiles and its example counts
// concurrently.
func (s *profileService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var profile models.Profile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := s.users.GetUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		profile.User = user
		return nil
	})
	g.Go(func() error {
		styles, err := s.styles.ListStyleProfiles(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load style profiles: %w", err)
		}
		profile.StyleProfiles = styles
		return nil
	})
	g.Go(func() error {
		counts, err := s.styles.CountExamples(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count examples: %w", err)
		}
		profile.ExampleCounts = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.GetProfile").Msg("failed to load profile")
		return models.Profile{}, err
	}

	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateStyle writes the supplied fields, creating the profile from the
// defaults when the user has none for the report type.
func (s *profileService) UpdateStyle(ctx context.Context, userID string, reportType models.ReportType, update models.StyleProfileUpdate) (models.StyleProfile, error) {
	base := models.DefaultStyleProfile(userID, reportType)
	base.ID = s.ids.Generate()

	profile, err := s.styles.UpsertStyleProfile(ctx, base, update)
	if err != nil {
		return models.StyleProfile{}, fmt.Errorf("failed to update style profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UploadExample(ctx context.Context, userID string, req models.ExampleUploadRequest) (models.ExampleReport, error) {
	example, err := s.styles.CreateExample(ctx, models.ExampleReport{
		ID:         s.ids.Generate(),
		UserID:     userID,
		ReportType: req.ReportType,
		Content:    req.Content,
	}, models.MaxExamplesPerType)
	if errors.Is(err, store.ErrExampleQuotaExceeded) {
		return models.ExampleReport{}, fmt.Errorf("%w: %w", ErrExampleQuotaExceeded, err)
	}
	if err != nil {
		return models.ExampleReport{}, fmt.Errorf("failed to upload example: %w", err)
	}
	return example, nil
}

func (s *profileService) ListExamples(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error) {
	previews, err := s.styles.ListExamplePreviews(ctx, userID, reportType)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	return previews, nil
}

func (s *profileService) DeleteExample(ctx context.Context, userID, exampleID string) error {
	if err := s.styles.DeleteExample(ctx, userID, exampleID); err != nil {
		return fmt.Errorf("failed to delete example: %w", err)
	}
	return nil
}
