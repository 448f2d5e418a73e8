package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

// reportRepository is the PostgreSQL-backed implementation of
// [ReportRepository]. Every query is scoped by the owning user.
type reportRepository struct {
	*DB
	logger *logger.Logger
}

func NewReportRepository(db *DB, logger *logger.Logger) ReportRepository {
	logger.Debug().Msg("creating report repository")
	return &reportRepository{
		DB:     db,
		logger: logger,
	}
}

func scanReport(row rowScanner) (models.Report, error) {
	var r models.Report
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.ReportType,
		&r.Status,
		&r.Title,
		&r.CaseNumber,
		&r.Transcript,
		&r.GeneratedContent,
		&r.FinalContent,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *reportRepository) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	log := logger.FromContext(ctx)

	created, err := scanReport(r.DB.QueryRowContext(ctx, createReport,
		report.ID, report.UserID, report.ReportType, report.Status, report.Title))
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.CreateReport").Msg("failed to insert report")
		return models.Report{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// ListReports returns one page of the user's reports and the total number of
// reports matching the filter.
func (r *reportRepository) ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountReportsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.ListReports").Msg("failed to build count query")
		return models.ReportList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	list := models.ReportList{Reports: make([]models.ReportListItem, 0, filter.Limit), Page: filter.Page, Limit: filter.Limit}
	if err = r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&list.Total); err != nil {
		log.Err(err).Str("func", "*reportRepository.ListReports").Msg("failed to count reports")
		return models.ReportList{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildListReportsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.ListReports").Msg("failed to build list query")
		return models.ReportList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.ListReports").Msg("failed to list reports")
		return models.ReportList{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ReportListItem
		if err = rows.Scan(&item.ID, &item.ReportType, &item.Status, &item.Title, &item.CaseNumber, &item.CreatedAt, &item.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*reportRepository.ListReports").Msg("failed to scan report row")
			return models.ReportList{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		list.Reports = append(list.Reports, item)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*reportRepository.ListReports").Msg("error occurred during rows iteration")
		return models.ReportList{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return list, nil
}

func (r *reportRepository) GetReport(ctx context.Context, userID, reportID string) (models.Report, error) {
	log := logger.FromContext(ctx)

	report, err := scanReport(r.DB.QueryRowContext(ctx, getReport, reportID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrReportNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.GetReport").Str("report_id", reportID).Msg("failed to get report")
		return models.Report{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return report, nil
}

// UpdateReport writes the fields present in update and returns the stored
// report.
func (r *reportRepository) UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateReportQuery(userID, reportID, update)
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.UpdateReport").Msg("failed to build query")
		return models.Report{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	report, err := scanReport(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrReportNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.UpdateReport").Str("report_id", reportID).Msg("failed to update report")
		return models.Report{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return report, nil
}

// DeleteReport removes the report and everything attached to it. The report
// row is locked first so that no session or reference is added concurrently.
func (r *reportRepository) DeleteReport(ctx context.Context, userID, reportID string) error {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, "*reportRepository.DeleteReport", func(tx *sql.Tx) error {
		var id string
		if err := tx.QueryRowContext(ctx, lockReport, reportID, userID).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReportNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		for _, stmt := range []string{deleteReportReferences, deleteReportMessages, deleteReportSessions} {
			if _, err := tx.ExecContext(ctx, stmt, reportID); err != nil {
				log.Err(err).Str("func", "*reportRepository.DeleteReport").Str("report_id", reportID).Msg("failed to delete report children")
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
		}

		if _, err := tx.ExecContext(ctx, deleteReport, reportID, userID); err != nil {
			log.Err(err).Str("func", "*reportRepository.DeleteReport").Str("report_id", reportID).Msg("failed to delete report")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Str("func", "*reportRepository.DeleteReport").Str("report_id", reportID).Msg("report deleted")
	return nil
}
