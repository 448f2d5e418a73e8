package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{
		DB:                 conn,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
