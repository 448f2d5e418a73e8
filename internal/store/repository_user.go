package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// Besides the "users" table it writes the per-user seed rows (style profiles
// and case law) created on first sight.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u      models.User
		status sql.NullString
		tier   sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.JurisdictionState,
		&u.JurisdictionCounty,
		&status,
		&tier,
		&u.StripeCustomerID,
		&u.SubscriptionID,
		&u.SubscriptionCurrentPeriodEnd,
		&u.TrialEndsAt,
		&u.SubscriptionEventAt,
		&u.CaseLawInitialized,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	u.SubscriptionStatus = models.SubscriptionStatus(status.String)
	u.SubscriptionTier = models.SubscriptionTier(tier.String)
	return u, err
}

// GetUser returns the user with the given identity provider uid or
// [ErrUserNotFound].
func (r *userRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	return r.getUser(ctx, "*userRepository.GetUser", getUserByID, userID)
}

// FindUserByCustomerID returns the user owning the billing customer or
// [ErrUserNotFound].
func (r *userRepository) FindUserByCustomerID(ctx context.Context, customerID string) (models.User, error) {
	return r.getUser(ctx, "*userRepository.FindUserByCustomerID", getUserByCustomerID, customerID)
}

func (r *userRepository) getUser(ctx context.Context, funcName, query, arg string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to get user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// CreateUser inserts a new account together with its style profiles and the
// default case law. If the user already exists (a concurrent first sight
// won the race) nothing is written and [ErrUserAlreadyExists] is returned.
func (r *userRepository) CreateUser(ctx context.Context, user models.User, seed UserSeed) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := r.inTx(ctx, "*userRepository.CreateUser", func(tx *sql.Tx) error {
		var err error
		created, err = scanUser(tx.QueryRowContext(ctx, createUser,
			user.ID, user.Email, user.Name, user.SubscriptionStatus, user.TrialEndsAt))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserAlreadyExists
		}
		if err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to insert user")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		for _, profile := range seed.StyleProfiles {
			if err = insertStyleProfileTx(ctx, tx, profile); err != nil {
				log.Err(err).Str("func", "*userRepository.CreateUser").
					Str("report_type", string(profile.ReportType)).
					Msg("failed to seed style profile")
				return err
			}
		}

		seeded, err := seedCaseLawTx(ctx, tx, user.ID, seed.CaseLaw)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to seed case law")
			return err
		}
		created.CaseLawInitialized = seeded || created.CaseLawInitialized
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	log.Info().Str("func", "*userRepository.CreateUser").
		Str("user_id", created.ID).
		Int("style_profiles", len(seed.StyleProfiles)).
		Int("case_law", len(seed.CaseLaw)).
		Msg("user created")

	return created, nil
}

// SeedCaseLaw copies caseLaw into the user's documents unless it was done
// before. It reports whether documents were inserted.
func (r *userRepository) SeedCaseLaw(ctx context.Context, userID string, caseLaw []models.PolicyDocument) (bool, error) {
	var seeded bool
	err := r.inTx(ctx, "*userRepository.SeedCaseLaw", func(tx *sql.Tx) error {
		var err error
		seeded, err = seedCaseLawTx(ctx, tx, userID, caseLaw)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.SeedCaseLaw").Msg("failed to seed case law")
		return false, err
	}

	return seeded, nil
}

func seedCaseLawTx(ctx context.Context, tx *sql.Tx, userID string, caseLaw []models.PolicyDocument) (bool, error) {
	res, err := tx.ExecContext(ctx, markCaseLawInitialized, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return false, nil
	}

	for _, doc := range caseLaw {
		if _, err = tx.ExecContext(ctx, insertPolicyDocument, doc.ID, userID, doc.Filename, doc.Content, true); err != nil {
			return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return true, nil
}

// BackfillTrial starts the trial of a legacy user without subscription
// status. The user is returned unchanged when the status was already set.
func (r *userRepository) BackfillTrial(ctx context.Context, userID string, trialEndsAt time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.DB.QueryRowContext(ctx, backfillTrial, userID, trialEndsAt))
	if errors.Is(err, sql.ErrNoRows) {
		return r.GetUser(ctx, userID)
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.BackfillTrial").Msg("failed to backfill trial")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().Str("func", "*userRepository.BackfillTrial").Str("user_id", userID).Msg("trial backfilled")
	return user, nil
}

// UpdateProfile writes the supplied account fields and returns the user.
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("failed to update profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// SetCustomerID links the user to a billing customer.
func (r *userRepository) SetCustomerID(ctx context.Context, userID, customerID string) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, setCustomerID, userID, customerID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetCustomerID").Msg("failed to set customer id")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ApplySubscriptionUpdate writes a billing event to the user. Events older
// than the last applied one are ignored and false is returned.
func (r *userRepository) ApplySubscriptionUpdate(ctx context.Context, userID string, update models.SubscriptionUpdate) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSubscriptionUpdateQuery(userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ApplySubscriptionUpdate").Msg("failed to build query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ApplySubscriptionUpdate").Msg("failed to apply subscription update")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Info().Str("func", "*userRepository.ApplySubscriptionUpdate").
			Str("user_id", userID).
			Time("event_at", update.EventAt).
			Msg("stale billing event ignored")
		return false, nil
	}

	return true, nil
}
