package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

// styleRepository stores style profiles and example reports.
type styleRepository struct {
	*DB
	logger *logger.Logger
}

func NewStyleRepository(db *DB, logger *logger.Logger) StyleRepository {
	logger.Debug().Msg("creating style repository")
	return &styleRepository{
		DB:     db,
		logger: logger,
	}
}

func encodeStyleColumns(p models.StyleProfile) (string, string, error) {
	phrases := p.CommonPhrases
	if phrases == nil {
		phrases = []string{}
	}
	vocabulary := p.VocabularyPreferences
	if vocabulary == nil {
		vocabulary = map[string]string{}
	}

	phrasesJSON, err := json.Marshal(phrases)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	vocabularyJSON, err := json.Marshal(vocabulary)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	return string(phrasesJSON), string(vocabularyJSON), nil
}

func scanStyleProfile(row rowScanner) (models.StyleProfile, error) {
	var (
		p          models.StyleProfile
		phrases    []byte
		vocabulary []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.ReportType, &p.Voice, &p.DetailLevel, &phrases, &vocabulary, &p.UpdatedAt); err != nil {
		return models.StyleProfile{}, err
	}

	if err := json.Unmarshal(phrases, &p.CommonPhrases); err != nil {
		return models.StyleProfile{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	if err := json.Unmarshal(vocabulary, &p.VocabularyPreferences); err != nil {
		return models.StyleProfile{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	return p, nil
}

func insertStyleProfileTx(ctx context.Context, tx *sql.Tx, p models.StyleProfile) error {
	phrases, vocabulary, err := encodeStyleColumns(p)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, insertStyleProfile, p.ID, p.UserID, p.ReportType, p.Voice, p.DetailLevel, phrases, vocabulary); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *styleRepository) ListStyleProfiles(ctx context.Context, userID string) ([]models.StyleProfile, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listStyleProfiles, userID)
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.ListStyleProfiles").Msg("failed to list style profiles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	profiles := make([]models.StyleProfile, 0, len(models.ReportTypes))
	for rows.Next() {
		p, err := scanStyleProfile(rows)
		if err != nil {
			log.Err(err).Str("func", "*styleRepository.ListStyleProfiles").Msg("failed to scan style profile")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return profiles, nil
}

func (r *styleRepository) GetStyleProfile(ctx context.Context, userID string, reportType models.ReportType) (models.StyleProfile, error) {
	log := logger.FromContext(ctx)

	p, err := scanStyleProfile(r.DB.QueryRowContext(ctx, getStyleProfile, userID, reportType))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StyleProfile{}, ErrStyleProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.GetStyleProfile").Msg("failed to get style profile")
		return models.StyleProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return p, nil
}

// UpsertStyleProfile creates profile when the user has none for its report
// type, otherwise overwrites the fields present in update.
func (r *styleRepository) UpsertStyleProfile(ctx context.Context, profile models.StyleProfile, update models.StyleProfileUpdate) (models.StyleProfile, error) {
	log := logger.FromContext(ctx)

	phrases, vocabulary, err := encodeStyleColumns(profile)
	if err != nil {
		return models.StyleProfile{}, err
	}

	query, args, err := buildUpsertStyleProfileQuery(profile, phrases, vocabulary, update)
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.UpsertStyleProfile").Msg("failed to build query")
		return models.StyleProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := scanStyleProfile(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.UpsertStyleProfile").Msg("failed to upsert style profile")
		return models.StyleProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

// CountExamples returns the number of example reports per report type.
// Types without examples are reported as zero.
func (r *styleRepository) CountExamples(ctx context.Context, userID string) (map[models.ReportType]int, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, countExamples, userID)
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.CountExamples").Msg("failed to count examples")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[models.ReportType]int, len(models.ReportTypes))
	for _, rt := range models.ReportTypes {
		counts[rt] = 0
	}
	for rows.Next() {
		var (
			rt    models.ReportType
			count int
		)
		if err = rows.Scan(&rt, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts[rt] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

// CreateExample stores the example unless the user already has quota
// examples of that type, in which case [ErrExampleQuotaExceeded] is
// returned and nothing is written.
func (r *styleRepository) CreateExample(ctx context.Context, example models.ExampleReport, quota int) (models.ExampleReport, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, createExampleWithinQuota,
		example.ID, example.UserID, example.ReportType, example.Content, quota,
	).Scan(&example.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExampleReport{}, ErrExampleQuotaExceeded
	}
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.CreateExample").Msg("failed to insert example")
		return models.ExampleReport{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return example, nil
}

func (r *styleRepository) ListExamplePreviews(ctx context.Context, userID string, reportType *models.ReportType) ([]models.ExampleReportPreview, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListExamplePreviewsQuery(userID, reportType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.ListExamplePreviews").Msg("failed to list examples")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	previews := make([]models.ExampleReportPreview, 0, models.MaxExamplesPerType)
	for rows.Next() {
		var p models.ExampleReportPreview
		if err = rows.Scan(&p.ID, &p.ReportType, &p.Preview, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		previews = append(previews, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return previews, nil
}

// ListExamples returns up to limit full examples of a type, oldest first.
func (r *styleRepository) ListExamples(ctx context.Context, userID string, reportType models.ReportType, limit int) ([]models.ExampleReport, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listExamples, userID, reportType, limit)
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.ListExamples").Msg("failed to list examples")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	examples := make([]models.ExampleReport, 0, limit)
	for rows.Next() {
		var e models.ExampleReport
		if err = rows.Scan(&e.ID, &e.UserID, &e.ReportType, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		examples = append(examples, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return examples, nil
}

func (r *styleRepository) DeleteExample(ctx context.Context, userID, exampleID string) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, deleteExample, exampleID, userID)
	if err != nil {
		log.Err(err).Str("func", "*styleRepository.DeleteExample").Msg("failed to delete example")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrExampleNotFound
	}

	return nil
}
