package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-six-notes/models"
)

const (
	createUser = `INSERT INTO users (login, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, password_hash, restricted, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, restricted, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, restricted, created_at
    FROM users
    WHERE user_id = $1;`
)

const (
	recordsTable       = "records"
	subscriptionsTable = "subscriptions"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var recordColumns = []string{
	"record_name",
	"content",
	"last_modified",
	"cursor_position",
	"change_tag",
}

var recordReturning = "RETURNING record_name, content, last_modified, cursor_position, change_tag"

// buildListRecordsQuery selects one row more than limit so the caller can
// tell whether another page follows.
func buildListRecordsQuery(userID int64, cursor string, limit int) (string, []any, error) {
	if limit <= 0 {
		return "", nil, fmt.Errorf("%w: limit must be positive", ErrBuildingSQLQuery)
	}

	q := psql.
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"user_id": userID, "record_type": models.NoteRecordType}).
		OrderBy("record_name").
		Limit(uint64(limit) + 1)
	if cursor != "" {
		q = q.Where(sq.Gt{"record_name": cursor})
	}

	return wrapBuild(q.ToSql())
}

func buildGetRecordQuery(userID int64, recordName string, forUpdate bool) (string, []any, error) {
	q := psql.
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"user_id": userID, "record_name": recordName})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	return wrapBuild(q.ToSql())
}

func buildInsertRecordQuery(userID int64, record models.NoteRecord, newTag string) (string, []any, error) {
	q := psql.
		Insert(recordsTable).
		Columns("user_id", "record_name", "record_type", "content", "last_modified", "cursor_position", "change_tag").
		Values(userID, record.RecordName, models.NoteRecordType, record.Content, record.LastModified, record.CursorPosition, newTag).
		Suffix("ON CONFLICT (user_id, record_name) DO NOTHING " + recordReturning)

	return wrapBuild(q.ToSql())
}

func buildUpdateRecordQuery(userID int64, record models.NoteRecord, newTag string) (string, []any, error) {
	q := psql.
		Update(recordsTable).
		Set("content", record.Content).
		Set("last_modified", record.LastModified).
		Set("cursor_position", record.CursorPosition).
		Set("change_tag", newTag).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID, "record_name": record.RecordName, "change_tag": record.ChangeTag}).
		Suffix(recordReturning)

	return wrapBuild(q.ToSql())
}

func buildUpsertSubscriptionQuery(userID int64, sub models.SubscriptionRequest) (string, []any, error) {
	q := psql.
		Insert(subscriptionsTable).
		Columns("user_id", "subscription_id", "record_type").
		Values(userID, sub.SubscriptionID, sub.RecordType).
		Suffix("ON CONFLICT (user_id, subscription_id) DO UPDATE SET record_type = EXCLUDED.record_type")

	return wrapBuild(q.ToSql())
}

func buildListSubscriptionsQuery(userID int64) (string, []any, error) {
	q := psql.
		Select("subscription_id", "record_type").
		From(subscriptionsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at")

	return wrapBuild(q.ToSql())
}

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
