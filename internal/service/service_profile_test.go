package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile(t *testing.T) {
	users := &mockUserRepository{
		getUserFn: func(_ context.Context, userID string) (models.User, error) {
			return models.User{ID: userID, Name: "Jane"}, nil
		},
	}
	styles := &mockStyleRepository{
		listProfilesFn: func(_ context.Context, userID string) ([]models.StyleProfile, error) {
			return []models.StyleProfile{models.DefaultStyleProfile(userID, models.ReportIncident)}, nil
		},
		countFn: func(context.Context, string) (map[models.ReportType]int, error) {
			return map[models.ReportType]int{models.ReportIncident: 2}, nil
		},
	}
	svc := NewProfileService(users, styles, &seqIDs{})

	profile, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", profile.User.Name)
	assert.Len(t, profile.StyleProfiles, 1)
	assert.Equal(t, 2, profile.ExampleCounts[models.ReportIncident])
}

func TestProfileService_GetProfile_Error(t *testing.T) {
	styles := &mockStyleRepository{
		countFn: func(context.Context, string) (map[models.ReportType]int, error) {
			return nil, store.ErrExecutingQuery
		},
	}
	users := &mockUserRepository{
		getUserFn: func(_ context.Context, userID string) (models.User, error) { return models.User{ID: userID}, nil },
	}
	svc := NewProfileService(users, styles, &seqIDs{})

	_, err := svc.GetProfile(context.Background(), "u1")
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestProfileService_UpdateStyle_DefaultBase(t *testing.T) {
	voice := models.VoiceThirdPerson
	styles := &mockStyleRepository{
		upsertFn: func(_ context.Context, base models.StyleProfile, update models.StyleProfileUpdate) (models.StyleProfile, error) {
			assert.Equal(t, "id-1", base.ID)
			assert.Equal(t, models.ReportArrest, base.ReportType)
			assert.Equal(t, models.DetailMedium, base.DetailLevel)
			assert.Equal(t, &voice, update.Voice)
			base.Voice = *update.Voice
			return base, nil
		},
	}
	svc := NewProfileService(&mockUserRepository{}, styles, &seqIDs{})

	profile, err := svc.UpdateStyle(context.Background(), "u1", models.ReportArrest, models.StyleProfileUpdate{Voice: &voice})
	require.NoError(t, err)
	assert.Equal(t, models.VoiceThirdPerson, profile.Voice)
}

func TestProfileService_UploadExample(t *testing.T) {
	t.Run("quota exceeded", func(t *testing.T) {
		styles := &mockStyleRepository{
			createFn: func(_ context.Context, _ models.ExampleReport, quota int) (models.ExampleReport, error) {
				assert.Equal(t, models.MaxExamplesPerType, quota)
				return models.ExampleReport{}, store.ErrExampleQuotaExceeded
			},
		}
		svc := NewProfileService(&mockUserRepository{}, styles, &seqIDs{})

		_, err := svc.UploadExample(context.Background(), "u1", models.ExampleUploadRequest{ReportType: models.ReportIncident, Content: "x"})
		assert.ErrorIs(t, err, ErrExampleQuotaExceeded)
	})

	t.Run("stored", func(t *testing.T) {
		svc := NewProfileService(&mockUserRepository{}, &mockStyleRepository{}, &seqIDs{})

		example, err := svc.UploadExample(context.Background(), "u1", models.ExampleUploadRequest{ReportType: models.ReportIncident, Content: "x"})
		require.NoError(t, err)
		assert.Equal(t, "id-1", example.ID)
		assert.Equal(t, "u1", example.UserID)
	})
}

func TestProfileService_DeleteExample_NotFound(t *testing.T) {
	styles := &mockStyleRepository{
		deleteFn: func(context.Context, string, string) error { return store.ErrExampleNotFound },
	}
	svc := NewProfileService(&mockUserRepository{}, styles, &seqIDs{})

	err := svc.DeleteExample(context.Background(), "u1", "e1")
	assert.True(t, errors.Is(err, store.ErrExampleNotFound))
}
