package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-six-notes/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrNotAuthenticated, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrRecordNotFound, body)
	case http.StatusConflict:
		var current models.NoteRecord
		if err := json.Unmarshal(resp.Body(), &current); err != nil || current.RecordName == "" {
			return &ServerError{StatusCode: resp.StatusCode(), Message: "conflict without server record: " + body}
		}
		return &ConflictError{Server: current}
	case http.StatusInsufficientStorage, http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, body)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrNetworkUnavailable, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return &ServerError{StatusCode: resp.StatusCode(), Message: body}
	}
}

// mapTransportError classifies an error returned by resty before any response
// was received: dial failures, resets and timeouts all mean the service is
// unreachable. Caller cancellation is passed through unchanged.
func mapTransportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrNetworkUnavailable, err)
}
