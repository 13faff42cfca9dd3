package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/validators"
	"github.com/MKhiriev/go-six-notes/models"
)

// RecordValidationService rejects malformed records before they reach
// storage. Validator errors are translated to service errors so that the
// transport layer only has to know one taxonomy.
type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService(maxContentBytes int) RecordServiceWrapper {
	return &RecordValidationService{
		validator: validators.NewRecordValidator(maxContentBytes),
	}
}

func (v *RecordValidationService) ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error) {
	if limit <= 0 {
		return models.RecordsPage{}, ErrInvalidDataProvided
	}
	return v.inner.ListRecords(ctx, userID, cursor, limit)
}

func (v *RecordValidationService) GetRecord(ctx context.Context, userID int64, recordName string) (models.NoteRecord, error) {
	if err := v.validator.Validate(ctx, models.NoteRecord{RecordName: recordName}, validators.FieldRecordName); err != nil {
		return models.NoteRecord{}, translateValidationError(err)
	}
	return v.inner.GetRecord(ctx, userID, recordName)
}

func (v *RecordValidationService) SaveRecord(ctx context.Context, userID int64, record models.NoteRecord) (models.NoteRecord, error) {
	if err := v.validator.Validate(ctx, record); err != nil {
		return models.NoteRecord{}, translateValidationError(err)
	}
	return v.inner.SaveRecord(ctx, userID, record)
}

func (v *RecordValidationService) Subscribe(ctx context.Context, userID int64, req models.SubscriptionRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return translateValidationError(err)
	}
	return v.inner.Subscribe(ctx, userID, req)
}

func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func translateValidationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrInvalidRecordName):
		return fmt.Errorf("%w: %w", ErrInvalidRecordName, err)
	case errors.Is(err, validators.ErrContentTooLarge):
		return fmt.Errorf("%w: %w", ErrContentTooLarge, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
}
