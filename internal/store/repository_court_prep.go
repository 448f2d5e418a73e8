package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

// courtPrepRepository stores court-prep sessions and their transcripts.
// Every transcript write happens in the same transaction as the matching
// message_count change, so the counter always equals the number of stored
// messages.
type courtPrepRepository struct {
	*DB
	logger *logger.Logger
}

func NewCourtPrepRepository(db *DB, logger *logger.Logger) CourtPrepRepository {
	logger.Debug().Msg("creating court prep repository")
	return &courtPrepRepository{
		DB:     db,
		logger: logger,
	}
}

func scanSession(row rowScanner) (models.CourtPrepSession, error) {
	var s models.CourtPrepSession
	err := row.Scan(
		&s.ID,
		&s.ReportID,
		&s.UserID,
		&s.Status,
		&s.VulnerabilityAssessment,
		&s.Debrief,
		&s.MessageCount,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func insertMessageTx(ctx context.Context, tx *sql.Tx, sessionID string, m models.CourtPrepMessage) error {
	if _, err := tx.ExecContext(ctx, insertMessage, m.ID, sessionID, m.Role, m.Content, m.CreatedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *courtPrepRepository) CreateSession(ctx context.Context, session models.CourtPrepSession) (models.CourtPrepSession, error) {
	log := logger.FromContext(ctx)

	created, err := scanSession(r.DB.QueryRowContext(ctx, createSession,
		session.ID, session.ReportID, session.UserID, session.Status))
	if err != nil {
		log.Err(err).Str("func", "*courtPrepRepository.CreateSession").Msg("failed to insert session")
		return models.CourtPrepSession{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *courtPrepRepository) GetSession(ctx context.Context, userID, sessionID string) (models.CourtPrepSession, error) {
	log := logger.FromContext(ctx)

	session, err := scanSession(r.DB.QueryRowContext(ctx, getSession, sessionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CourtPrepSession{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*courtPrepRepository.GetSession").Msg("failed to get session")
		return models.CourtPrepSession{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// DeleteSession removes a session that never became active.
func (r *courtPrepRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.DB.ExecContext(ctx, deleteSession, sessionID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*courtPrepRepository.DeleteSession").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *courtPrepRepository) ActivateSession(ctx context.Context, sessionID, assessment string, first models.CourtPrepMessage) error {
	log := logger.FromContext(ctx)

	return r.inTx(ctx, "*courtPrepRepository.ActivateSession", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, activateSession, sessionID, assessment)
		if err != nil {
			log.Err(err).Str("func", "*courtPrepRepository.ActivateSession").Msg("failed to activate session")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrSessionNotActive
		}

		return insertMessageTx(ctx, tx, sessionID, first)
	})
}

func (r *courtPrepRepository) ListMessages(ctx context.Context, sessionID string) ([]models.CourtPrepMessage, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listMessages, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*courtPrepRepository.ListMessages").Msg("failed to list messages")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.CourtPrepMessage, 0)
	for rows.Next() {
		var m models.CourtPrepMessage
		if err = rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return messages, nil
}

func (r *courtPrepRepository) AppendExchange(ctx context.Context, sessionID string, userTurn, reply models.CourtPrepMessage) error {
	log := logger.FromContext(ctx)

	return r.inTx(ctx, "*courtPrepRepository.AppendExchange", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, bumpActiveSession, sessionID)
		if err != nil {
			log.Err(err).Str("func", "*courtPrepRepository.AppendExchange").Msg("failed to update session")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrSessionNotActive
		}

		if err = insertMessageTx(ctx, tx, sessionID, userTurn); err != nil {
			return err
		}
		return insertMessageTx(ctx, tx, sessionID, reply)
	})
}

// CompleteSession marks the session completed, storing debrief when it is
// not nil. It returns [ErrSessionCompleted] if the session was already
// completed.
func (r *courtPrepRepository) CompleteSession(ctx context.Context, sessionID string, debrief *string) (models.CourtPrepSession, error) {
	log := logger.FromContext(ctx)

	session, err := scanSession(r.DB.QueryRowContext(ctx, completeSession, sessionID, debrief))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CourtPrepSession{}, ErrSessionCompleted
	}
	if err != nil {
		log.Err(err).Str("func", "*courtPrepRepository.CompleteSession").Msg("failed to complete session")
		return models.CourtPrepSession{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().Str("func", "*courtPrepRepository.CompleteSession").Str("session_id", sessionID).Msg("court prep session completed")
	return session, nil
}
