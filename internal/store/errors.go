package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user has the requested id or
	// billing customer reference.
	ErrUserNotFound = errors.New("user was not found")

	// ErrUserAlreadyExists is returned when a concurrent first sight already
	// created the user.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrReportNotFound is returned when a report does not exist or belongs
	// to another user.
	ErrReportNotFound = errors.New("report was not found")

	// ErrStyleProfileNotFound is returned when a user has no profile for the
	// requested report type.
	ErrStyleProfileNotFound = errors.New("style profile was not found")

	// ErrExampleNotFound is returned when an example report does not exist or
	// belongs to another user.
	ErrExampleNotFound = errors.New("example report was not found")

	// ErrExampleQuotaExceeded is returned when the insert would exceed the
	// per-type example quota.
	ErrExampleQuotaExceeded = errors.New("example report quota exceeded")

	// ErrPolicyNotFound is returned when a policy document does not exist or
	// belongs to another user.
	ErrPolicyNotFound = errors.New("policy document was not found")

	// ErrSessionNotFound is returned when a court-prep session does not exist
	// or belongs to another user.
	ErrSessionNotFound = errors.New("court prep session was not found")

	// ErrSessionNotActive is returned when messages are appended to a
	// session that is not active.
	ErrSessionNotActive = errors.New("court prep session is not active")

	// ErrSessionCompleted is returned when a completed session is completed
	// again.
	ErrSessionCompleted = errors.New("court prep session already completed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingJSON is returned when a JSONB column value cannot be
	// encoded or decoded.
	ErrEncodingJSON = errors.New("failed to encode json column")
)
