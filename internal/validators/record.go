package validators

import (
	"context"

	"github.com/MKhiriev/go-six-notes/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldRecordName targets the "note_<slot>" identity of a record.
	FieldRecordName = "record_name"

	// FieldContent targets the content quota.
	FieldContent = "content"

	// FieldCursor targets the cursor position carried with the content.
	FieldCursor = "cursor_position"

	// FieldLastModified targets the client modification time.
	FieldLastModified = "last_modified"

	// FieldLogin and FieldPassword target credential payloads.
	FieldLogin    = "login"
	FieldPassword = "password"

	// FieldSubscriptionID and FieldRecordType target subscription requests.
	FieldSubscriptionID = "subscription_id"
	FieldRecordType     = "record_type"
)

// RecordValidator checks the inbound payloads of the record service.
type RecordValidator struct {
	// maxContentBytes is the per-record quota; zero disables the check.
	maxContentBytes int
}

// NewRecordValidator returns a Validator enforcing the given content quota.
func NewRecordValidator(maxContentBytes int) Validator {
	return &RecordValidator{maxContentBytes: maxContentBytes}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NoteRecord:
		return v.validateRecord(value, fields...)
	case *models.NoteRecord:
		return v.validateRecord(*value, fields...)

	case models.User:
		return v.validateCredentials(value, fields...)
	case *models.User:
		return v.validateCredentials(*value, fields...)

	case models.SubscriptionRequest:
		return v.validateSubscription(value, fields...)
	case *models.SubscriptionRequest:
		return v.validateSubscription(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(record models.NoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordName, FieldContent, FieldCursor, FieldLastModified}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordName:
			if _, ok := models.SlotFromRecordName(record.RecordName); !ok {
				return ErrInvalidRecordName
			}
		case FieldContent:
			if v.maxContentBytes > 0 && len(record.Content) > v.maxContentBytes {
				return ErrContentTooLarge
			}
		case FieldCursor:
			// единицы курсора определяет редактор, проверяем только знак
			if record.CursorPosition < 0 {
				return ErrNegativeCursor
			}
		case FieldLastModified:
			if record.LastModified.IsZero() {
				return ErrMissingModified
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateCredentials(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateSubscription(req models.SubscriptionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSubscriptionID, FieldRecordType}
	}

	for _, f := range fields {
		switch f {
		case FieldSubscriptionID:
			if req.SubscriptionID == "" || len(req.SubscriptionID) > 64 {
				return ErrInvalidSubID
			}
		case FieldRecordType:
			if req.RecordType != models.NoteRecordType {
				return ErrInvalidRecordType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
