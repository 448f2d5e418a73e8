package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [DB.inTx] whether a failed transaction may be
// replayed.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] on PostgreSQL
// SQLSTATE classes.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify returns [Retryable] for connection exceptions (class 08),
// transaction rollbacks such as deadlocks and serialization failures
// (class 40) and a server that cannot accept connections yet (57P03).
// Everything else, including errors that did not come from PostgreSQL,
// is [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	switch {
	case code == "":
		return NonRetryable
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow:
		return Retryable
	default:
		return NonRetryable
	}
}

// postgresError returns the SQLSTATE carried by err, or "".
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
