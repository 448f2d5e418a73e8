package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportRowColumns = []string{
	"id", "user_id", "report_type", "status", "title", "case_number",
	"transcript", "generated_content", "final_content", "created_at", "updated_at",
}

func newTestReportRepo(t *testing.T) (ReportRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return NewReportRepository(db, logger.Nop()), mock
}

func TestCreateReport(t *testing.T) {
	repo, mock := newTestReportRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO reports").
		WithArgs("r1", "u1", "incident", "draft", "New incident report").
		WillReturnRows(sqlmock.NewRows(reportRowColumns).
			AddRow("r1", "u1", "incident", "draft", "New incident report", nil, nil, nil, nil, now, now))

	report, err := repo.CreateReport(context.Background(), models.Report{
		ID:         "r1",
		UserID:     "u1",
		ReportType: models.ReportIncident,
		Status:     models.ReportDraft,
		Title:      models.ReportIncident.DefaultTitle(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportDraft, report.Status)
	assert.Nil(t, report.Transcript)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListReports_Paginates(t *testing.T) {
	repo, mock := newTestReportRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reports").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT id, report_type, status, title, case_number, created_at, updated_at FROM reports").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_type", "status", "title", "case_number", "created_at", "updated_at"}).
			AddRow("r3", "arrest", "draft", "Third", nil, now, now))

	list, err := repo.ListReports(context.Background(), models.ReportListFilter{UserID: "u1", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 2, list.Limit)
	require.Len(t, list.Reports, 1)
	assert.Equal(t, "r3", list.Reports[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReport_NotOwned(t *testing.T) {
	repo, mock := newTestReportRepo(t)

	mock.ExpectQuery("FROM reports WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("r1", "intruder").
		WillReturnRows(sqlmock.NewRows(reportRowColumns))

	_, err := repo.GetReport(context.Background(), "intruder", "r1")
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestUpdateReport(t *testing.T) {
	repo, mock := newTestReportRepo(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE reports SET updated_at = NOW\\(\\), final_content = \\$1").
		WillReturnRows(sqlmock.NewRows(reportRowColumns).
			AddRow("r1", "u1", "incident", "draft", "t", nil, nil, "gen", "edited", now, now))

	report, err := repo.UpdateReport(context.Background(), "u1", "r1", models.ReportUpdate{FinalContent: models.Some("edited")})
	require.NoError(t, err)
	content, ok := report.Content()
	assert.True(t, ok)
	assert.Equal(t, "edited", content)
}

// ── DeleteReport ─────────────────────────────────────────────────────────────

func TestDeleteReport_CascadesInOneTransaction(t *testing.T) {
	repo, mock := newTestReportRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("r1", "u1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r1"))
	mock.ExpectExec("DELETE FROM legal_references").WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM court_prep_messages").WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec("DELETE FROM court_prep_sessions").WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM reports").WithArgs("r1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteReport(context.Background(), "u1", "r1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReport_NotFound(t *testing.T) {
	repo, mock := newTestReportRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("r1", "u1").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	require.ErrorIs(t, repo.DeleteReport(context.Background(), "u1", "r1"), ErrReportNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReport_ChildFailureRollsBack(t *testing.T) {
	repo, mock := newTestReportRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r1"))
	mock.ExpectExec("DELETE FROM legal_references").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.DeleteReport(context.Background(), "u1", "r1")
	require.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}
