package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

// legalRepository stores policy documents and the legal references produced
// by report analysis.
type legalRepository struct {
	*DB
	logger *logger.Logger
}

func NewLegalRepository(db *DB, logger *logger.Logger) LegalRepository {
	logger.Debug().Msg("creating legal repository")
	return &legalRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *legalRepository) CreatePolicy(ctx context.Context, doc models.PolicyDocument) (models.PolicyDocument, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, insertPolicyDocument, doc.ID, doc.UserID, doc.Filename, doc.Content, doc.IsCaseLaw).
		Scan(&doc.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*legalRepository.CreatePolicy").Msg("failed to insert policy document")
		return models.PolicyDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc, nil
}

// ListPolicies returns the user's documents without their content, newest
// first.
func (r *legalRepository) ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listPolicies, userID)
	if err != nil {
		log.Err(err).Str("func", "*legalRepository.ListPolicies").Msg("failed to list policies")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.PolicyDocument, 0)
	for rows.Next() {
		var d models.PolicyDocument
		if err = rows.Scan(&d.ID, &d.Filename, &d.IsCaseLaw, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		docs = append(docs, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

// ListLegalDocuments returns every document of the user with its content.
func (r *legalRepository) ListLegalDocuments(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listLegalDocuments, userID)
	if err != nil {
		log.Err(err).Str("func", "*legalRepository.ListLegalDocuments").Msg("failed to list legal documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.PolicyDocument, 0)
	for rows.Next() {
		var d models.PolicyDocument
		if err = rows.Scan(&d.ID, &d.UserID, &d.Filename, &d.Content, &d.IsCaseLaw, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		docs = append(docs, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

func (r *legalRepository) DeletePolicy(ctx context.Context, userID, policyID string) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, deletePolicy, policyID, userID)
	if err != nil {
		log.Err(err).Str("func", "*legalRepository.DeletePolicy").Msg("failed to delete policy")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

func (r *legalRepository) ListReferences(ctx context.Context, reportID string) ([]models.LegalReference, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listReferences, reportID)
	if err != nil {
		log.Err(err).Str("func", "*legalRepository.ListReferences").Msg("failed to list legal references")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	refs := make([]models.LegalReference, 0)
	for rows.Next() {
		var ref models.LegalReference
		if err = rows.Scan(
			&ref.ID,
			&ref.ReportID,
			&ref.UserID,
			&ref.ReferenceType,
			&ref.Title,
			&ref.Citation,
			&ref.Content,
			&ref.ActionValidated,
			&ref.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}

// ReplaceReferences swaps the report's references for refs. Readers never
// observe a mix of old and new rows.
func (r *legalRepository) ReplaceReferences(ctx context.Context, reportID string, refs []models.LegalReference) error {
	log := logger.FromContext(ctx)

	return r.inTx(ctx, "*legalRepository.ReplaceReferences", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteReferences, reportID); err != nil {
			log.Err(err).Str("func", "*legalRepository.ReplaceReferences").Msg("failed to delete old references")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		for _, ref := range refs {
			if _, err := tx.ExecContext(ctx, insertReference,
				ref.ID, reportID, ref.UserID, ref.ReferenceType, ref.Title, ref.Citation, ref.Content, ref.ActionValidated,
			); err != nil {
				log.Err(err).Str("func", "*legalRepository.ReplaceReferences").Msg("failed to insert reference")
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
		}
		return nil
	})
}
