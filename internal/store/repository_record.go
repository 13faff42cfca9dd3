package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository] over the "records" table.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.NoteRecord, error) {
	var rec models.NoteRecord
	if err := row.Scan(&rec.RecordName, &rec.Content, &rec.LastModified, &rec.CursorPosition, &rec.ChangeTag); err != nil {
		return models.NoteRecord{}, err
	}
	rec.LastModified = utils.Normalize(rec.LastModified)
	return rec, nil
}

// ListRecords implements [RecordRepository].
func (r *recordRepository) ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(userID, cursor, limit)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ListRecords").Msg("failed to create query")
		return models.RecordsPage{}, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ListRecords").Int64("user_id", userID).Msg("failed to list records")
		return models.RecordsPage{}, r.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.NoteRecord, 0, limit+1)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Err(err).Str("func", "*recordRepository.ListRecords").Msg("failed to scan record")
			return models.RecordsPage{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return models.RecordsPage{}, r.wrapError(ErrScanningRows, err)
	}

	page := models.RecordsPage{Records: records}
	if len(records) > limit {
		page.Records = records[:limit]
		page.NextCursor = records[limit-1].RecordName
	}

	return page, nil
}

// GetRecord implements [RecordRepository].
func (r *recordRepository) GetRecord(ctx context.Context, userID int64, recordName string) (models.NoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(userID, recordName, false)
	if err != nil {
		return models.NoteRecord{}, err
	}

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.NoteRecord{}, ErrRecordNotFound
	case err != nil:
		log.Err(err).Str("func", "*recordRepository.GetRecord").Str("record_name", recordName).Msg("failed to get record")
		return models.NoteRecord{}, r.wrapError(ErrExecutingQuery, err)
	}

	return rec, nil
}

// SaveRecord implements [RecordRepository]. The row is locked for the duration
// of the compare-and-write so two concurrent saves with the same base tag
// cannot both succeed.
//
// A missing record is inserted whatever base tag the client sent: the client
// may hold a tag for a record that was purged server-side. When a concurrent
// save creates the row first, the insert writes nothing and the winner is
// returned as a [VersionConflictError].
func (r *recordRepository) SaveRecord(ctx context.Context, userID int64, record models.NoteRecord, newTag string) (models.NoteRecord, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*recordRepository.SaveRecord").
		Int64("user_id", userID).
		Str("record_name", record.RecordName).
		Logger()

	record.LastModified = utils.Normalize(record.LastModified)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.NoteRecord{}, r.wrapError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildGetRecordQuery(userID, record.RecordName, true)
	if err != nil {
		return models.NoteRecord{}, err
	}

	current, err := scanRecord(tx.QueryRowContext(ctx, query, args...))
	inserting := errors.Is(err, sql.ErrNoRows)
	switch {
	case inserting:
		query, args, err = buildInsertRecordQuery(userID, record, newTag)
	case err != nil:
		log.Err(err).Msg("failed to lock record")
		return models.NoteRecord{}, r.wrapError(ErrExecutingQuery, err)
	case record.ChangeTag == "" || record.ChangeTag != current.ChangeTag:
		log.Info().Str("base_tag", record.ChangeTag).Str("current_tag", current.ChangeTag).Msg("change tag conflict")
		return models.NoteRecord{}, &VersionConflictError{Current: current}
	default:
		query, args, err = buildUpdateRecordQuery(userID, record, newTag)
	}
	if err != nil {
		return models.NoteRecord{}, err
	}

	saved, err := scanRecord(tx.QueryRowContext(ctx, query, args...))
	if inserting && errors.Is(err, sql.ErrNoRows) {
		return models.NoteRecord{}, r.insertLost(ctx, tx, userID, record.RecordName)
	}
	if err != nil {
		log.Err(err).Msg("failed to write record")
		return models.NoteRecord{}, r.wrapError(ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return models.NoteRecord{}, r.wrapError(ErrCommitingTransaction, err)
	}

	log.Debug().Str("change_tag", saved.ChangeTag).Msg("record saved")
	return saved, nil
}

// insertLost reads the row a concurrent save created between our lock attempt
// and our insert.
func (r *recordRepository) insertLost(ctx context.Context, tx *sql.Tx, userID int64, recordName string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(userID, recordName, true)
	if err != nil {
		return err
	}

	current, err := scanRecord(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.insertLost").Str("record_name", recordName).Msg("failed to read concurrently created record")
		return r.wrapError(ErrExecutingQuery, err)
	}

	log.Info().Str("record_name", recordName).Str("current_tag", current.ChangeTag).Msg("record created concurrently")
	return &VersionConflictError{Current: current}
}
