package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/report-buddy/models"
)

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `id, email, name, jurisdiction_state, jurisdiction_county,
		subscription_status, subscription_tier, stripe_customer_id, subscription_id,
		subscription_current_period_end, trial_ends_at, subscription_event_at,
		caselaw_initialized, created_at, updated_at`

const (
	getUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	getUserByCustomerID = `SELECT ` + userColumns + `
		FROM users
		WHERE stripe_customer_id = $1;`

	createUser = `INSERT INTO users (id, email, name, subscription_status, trial_ends_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
		RETURNING ` + userColumns + `;`

	markCaseLawInitialized = `UPDATE users
		SET caselaw_initialized = TRUE, updated_at = NOW()
		WHERE id = $1 AND caselaw_initialized = FALSE;`

	backfillTrial = `UPDATE users
		SET subscription_status = 'trialing', trial_ends_at = $2, updated_at = NOW()
		WHERE id = $1 AND subscription_status IS NULL
		RETURNING ` + userColumns + `;`

	setCustomerID = `UPDATE users
		SET stripe_customer_id = $2, updated_at = NOW()
		WHERE id = $1;`

	insertStyleProfile = `INSERT INTO style_profiles
		(id, user_id, report_type, voice, detail_level, common_phrases, vocabulary_preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, report_type) DO NOTHING;`

	insertPolicyDocument = `INSERT INTO policy_documents (id, user_id, filename, content, is_case_law)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;`
)

const reportColumns = `id, user_id, report_type, status, title, case_number,
		transcript, generated_content, final_content, created_at, updated_at`

const (
	createReport = `INSERT INTO reports (id, user_id, report_type, status, title)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reportColumns + `;`

	getReport = `SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1 AND user_id = $2;`

	lockReport = `SELECT id FROM reports
		WHERE id = $1 AND user_id = $2
		FOR UPDATE;`

	deleteReportMessages = `DELETE FROM court_prep_messages
		WHERE session_id IN (SELECT id FROM court_prep_sessions WHERE report_id = $1);`
	deleteReportSessions   = `DELETE FROM court_prep_sessions WHERE report_id = $1;`
	deleteReportReferences = `DELETE FROM legal_references WHERE report_id = $1;`
	deleteReport           = `DELETE FROM reports WHERE id = $1 AND user_id = $2;`
)

const styleProfileColumns = `id, user_id, report_type, voice, detail_level,
		common_phrases, vocabulary_preferences, updated_at`

const (
	listStyleProfiles = `SELECT ` + styleProfileColumns + `
		FROM style_profiles
		WHERE user_id = $1
		ORDER BY report_type;`

	getStyleProfile = `SELECT ` + styleProfileColumns + `
		FROM style_profiles
		WHERE user_id = $1 AND report_type = $2;`

	countExamples = `SELECT report_type, COUNT(*)
		FROM example_reports
		WHERE user_id = $1
		GROUP BY report_type;`

	// createExampleWithinQuota inserts nothing when the quota is reached.
	createExampleWithinQuota = `INSERT INTO example_reports (id, user_id, report_type, content)
		SELECT $1, $2, $3, $4
		WHERE (SELECT COUNT(*) FROM example_reports WHERE user_id = $2 AND report_type = $3) < $5
		RETURNING created_at;`

	listExamples = `SELECT id, user_id, report_type, content, created_at
		FROM example_reports
		WHERE user_id = $1 AND report_type = $2
		ORDER BY created_at
		LIMIT $3;`

	deleteExample = `DELETE FROM example_reports WHERE id = $1 AND user_id = $2;`
)

const (
	listPolicies = `SELECT id, filename, is_case_law, created_at
		FROM policy_documents
		WHERE user_id = $1
		ORDER BY created_at DESC;`

	listLegalDocuments = `SELECT id, user_id, filename, content, is_case_law, created_at
		FROM policy_documents
		WHERE user_id = $1
		ORDER BY created_at;`

	deletePolicy = `DELETE FROM policy_documents WHERE id = $1 AND user_id = $2;`

	listReferences = `SELECT id, report_id, user_id, reference_type, title, citation,
			content, action_validated, created_at
		FROM legal_references
		WHERE report_id = $1
		ORDER BY created_at, id;`

	deleteReferences = `DELETE FROM legal_references WHERE report_id = $1;`

	insertReference = `INSERT INTO legal_references
		(id, report_id, user_id, reference_type, title, citation, content, action_validated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
)

const sessionColumns = `id, report_id, user_id, status, vulnerability_assessment,
		debrief, message_count, created_at, updated_at`

const (
	createSession = `INSERT INTO court_prep_sessions (id, report_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + sessionColumns + `;`

	getSession = `SELECT ` + sessionColumns + `
		FROM court_prep_sessions
		WHERE id = $1 AND user_id = $2;`

	deleteSession = `DELETE FROM court_prep_sessions WHERE id = $1;`

	activateSession = `UPDATE court_prep_sessions
		SET status = 'active', vulnerability_assessment = $2, message_count = 1, updated_at = NOW()
		WHERE id = $1 AND status = 'analyzing';`

	bumpActiveSession = `UPDATE court_prep_sessions
		SET message_count = message_count + 2, updated_at = NOW()
		WHERE id = $1 AND status = 'active';`

	completeSession = `UPDATE court_prep_sessions
		SET status = 'completed', debrief = COALESCE($2, debrief), updated_at = NOW()
		WHERE id = $1 AND status <> 'completed'
		RETURNING ` + sessionColumns + `;`

	insertMessage = `INSERT INTO court_prep_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5);`

	listMessages = `SELECT id, session_id, role, content, created_at
		FROM court_prep_messages
		WHERE session_id = $1
		ORDER BY created_at, id;`
)

// buildListReportsQuery selects one page of a user's reports without their
// bodies, newest first.
func buildListReportsQuery(filter models.ReportListFilter) (string, []any, error) {
	q := psql.
		Select("id", "report_type", "status", "title", "case_number", "created_at", "updated_at").
		From("reports").
		Where(sq.Eq{"user_id": filter.UserID})
	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": *filter.Status})
	}

	return q.OrderBy("updated_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()
}

// buildCountReportsQuery counts the rows buildListReportsQuery pages over.
func buildCountReportsQuery(filter models.ReportListFilter) (string, []any, error) {
	q := psql.
		Select("COUNT(*)").
		From("reports").
		Where(sq.Eq{"user_id": filter.UserID})
	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": *filter.Status})
	}

	return q.ToSql()
}

// buildUpdateReportQuery writes only the fields present in update.
func buildUpdateReportQuery(userID, reportID string, update models.ReportUpdate) (string, []any, error) {
	q := psql.Update("reports").Set("updated_at", sq.Expr("NOW()"))

	q = setOptional(q, "title", update.Title)
	q = setOptional(q, "transcript", update.Transcript)
	q = setOptional(q, "case_number", update.CaseNumber)
	q = setOptional(q, "generated_content", update.GeneratedContent)
	q = setOptional(q, "final_content", update.FinalContent)
	q = setOptional(q, "status", update.Status)

	return q.
		Where(sq.Eq{"id": reportID, "user_id": userID}).
		Suffix("RETURNING " + reportColumns).
		ToSql()
}

// buildUpdateProfileQuery writes the supplied account fields.
func buildUpdateProfileQuery(userID string, update models.ProfileUpdate) (string, []any, error) {
	q := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	q = setOptional(q, "name", update.Name)
	q = setOptional(q, "jurisdiction_state", update.JurisdictionState)
	q = setOptional(q, "jurisdiction_county", update.JurisdictionCounty)

	return q.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
}

// buildUpsertStyleProfileQuery inserts profile, or on conflict overwrites
// only the columns present in update.
func buildUpsertStyleProfileQuery(profile models.StyleProfile, phrases, vocabulary string, update models.StyleProfileUpdate) (string, []any, error) {
	set := make([]string, 0, 5)
	if update.Voice != nil {
		set = append(set, "voice = EXCLUDED.voice")
	}
	if update.DetailLevel != nil {
		set = append(set, "detail_level = EXCLUDED.detail_level")
	}
	if update.CommonPhrases != nil {
		set = append(set, "common_phrases = EXCLUDED.common_phrases")
	}
	if update.VocabularyPreferences != nil {
		set = append(set, "vocabulary_preferences = EXCLUDED.vocabulary_preferences")
	}
	set = append(set, "updated_at = NOW()")

	suffix := "ON CONFLICT (user_id, report_type) DO UPDATE SET "
	for i, s := range set {
		if i > 0 {
			suffix += ", "
		}
		suffix += s
	}

	return psql.
		Insert("style_profiles").
		Columns("id", "user_id", "report_type", "voice", "detail_level", "common_phrases", "vocabulary_preferences").
		Values(profile.ID, profile.UserID, profile.ReportType, profile.Voice, profile.DetailLevel, phrases, vocabulary).
		Suffix(suffix + " RETURNING " + styleProfileColumns).
		ToSql()
}

// buildListExamplePreviewsQuery lists example reports with a 200 character
// preview instead of the full content.
func buildListExamplePreviewsQuery(userID string, reportType *models.ReportType) (string, []any, error) {
	q := psql.
		Select("id", "report_type", "LEFT(content, 200)", "created_at").
		From("example_reports").
		Where(sq.Eq{"user_id": userID})
	if reportType != nil {
		q = q.Where(sq.Eq{"report_type": *reportType})
	}

	return q.OrderBy("created_at DESC").ToSql()
}

// buildSubscriptionUpdateQuery applies a billing event unless a newer event
// was already applied to the user.
func buildSubscriptionUpdateQuery(userID string, update models.SubscriptionUpdate) (string, []any, error) {
	q := psql.Update("users").
		Set("subscription_event_at", update.EventAt).
		Set("updated_at", sq.Expr("NOW()"))

	if update.Status != nil {
		q = q.Set("subscription_status", *update.Status)
	}
	if update.Tier != nil {
		q = q.Set("subscription_tier", *update.Tier)
	}
	if update.CustomerID != nil {
		q = q.Set("stripe_customer_id", *update.CustomerID)
	}
	q = setOptional(q, "subscription_id", update.SubscriptionID)
	q = setOptional(q, "subscription_current_period_end", update.CurrentPeriodEnd)

	return q.
		Where(sq.Eq{"id": userID}).
		Where(sq.Or{
			sq.Eq{"subscription_event_at": nil},
			sq.LtOrEq{"subscription_event_at": update.EventAt},
		}).
		ToSql()
}

func setOptional[T any](q sq.UpdateBuilder, column string, o models.Optional[T]) sq.UpdateBuilder {
	if !o.Set {
		return q
	}
	if o.Value == nil {
		return q.Set(column, nil)
	}
	return q.Set(column, *o.Value)
}
