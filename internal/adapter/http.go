package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/go-resty/resty/v2"
)

// HashHeader carries the hex HMAC-SHA256 of the request body.
const HashHeader = "HashSHA256"

type httpRecordStore struct {
	client *utils.HTTPClient

	hashKey  string
	pageSize int

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRecordStore constructs an HTTP/REST implementation of [RecordStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and initialises the shared HMAC hasher pool used for request
// integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRecordStore(adapterCfg config.Adapter, appCfg config.ClientApp, logger *logger.Logger) (RecordStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	pageSize := adapterCfg.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultClientPageSize
	}

	return &httpRecordStore{client: client, hashKey: appCfg.HashKey, pageSize: pageSize, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RecordStore]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpRecordStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RecordStore]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpRecordStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [RecordStore]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpRecordStore) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, mapTransportError("register request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return models.User{Login: user.Login}, nil
}

// Login implements [RecordStore]. It POSTs the credentials to
// POST /api/auth/login and stores the bearer token from the Authorization
// response header.
func (h *httpRecordStore) Login(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, mapTransportError("login request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return models.User{Login: user.Login}, nil
}

// AccountStatus implements [RecordStore]. Transport failures are reported as
// [models.AccountStatusTemporarilyUnavailable] together with the error so
// callers may log it.
func (h *httpRecordStore) AccountStatus(ctx context.Context) (models.AccountStatus, error) {
	if h.Token() == "" {
		return models.AccountStatusNoAccount, nil
	}

	var status models.AccountStatusResponse
	resp, err := h.authedRequest(ctx).
		SetResult(&status).
		Get("/api/account/status")
	if err != nil {
		return models.AccountStatusTemporarilyUnavailable, mapTransportError("account status request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			return models.AccountStatusNoAccount, nil
		case errors.Is(err, ErrNetworkUnavailable):
			return models.AccountStatusTemporarilyUnavailable, err
		default:
			return models.AccountStatusUnknown, err
		}
	}

	if !status.Status.Valid() {
		return models.AccountStatusUnknown, nil
	}
	return status.Status, nil
}

// FetchAll implements [RecordStore]. Pages are requested with the configured
// page size and followed through next_cursor until it comes back empty.
func (h *httpRecordStore) FetchAll(ctx context.Context) ([]models.NoteRecord, error) {
	var (
		records []models.NoteRecord
		cursor  string
	)

	for {
		var page models.RecordsPage
		req := h.authedRequest(ctx).
			SetQueryParam("limit", strconv.Itoa(h.pageSize)).
			SetResult(&page)
		if cursor != "" {
			req.SetQueryParam("cursor", cursor)
		}

		resp, err := req.Get("/api/records")
		if err != nil {
			return nil, mapTransportError("fetch records request", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}

		records = append(records, page.Records...)
		if page.NextCursor == "" || page.NextCursor == cursor {
			break
		}
		cursor = page.NextCursor
	}

	h.logger.Debug().Str("func", "*httpRecordStore.FetchAll").Int("records", len(records)).Msg("fetched records")
	return records, nil
}

// FetchOne implements [RecordStore].
func (h *httpRecordStore) FetchOne(ctx context.Context, recordName string) (models.NoteRecord, error) {
	var record models.NoteRecord
	resp, err := h.authedRequest(ctx).
		SetPathParam("name", recordName).
		SetResult(&record).
		Get("/api/records/{name}")
	if err != nil {
		return models.NoteRecord{}, mapTransportError("fetch record request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NoteRecord{}, err
	}

	return record, nil
}

// Save implements [RecordStore]. The body is signed with the [HashHeader]
// when a hash key is configured.
func (h *httpRecordStore) Save(ctx context.Context, record models.NoteRecord) (models.NoteRecord, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return models.NoteRecord{}, fmt.Errorf("encode record: %w", err)
	}

	var saved models.NoteRecord
	resp, err := h.signedRequest(ctx, body).
		SetPathParam("name", record.RecordName).
		SetResult(&saved).
		Put("/api/records/{name}")
	if err != nil {
		return models.NoteRecord{}, mapTransportError("save record request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NoteRecord{}, err
	}

	return saved, nil
}

// Subscribe implements [RecordStore].
func (h *httpRecordStore) Subscribe(ctx context.Context, subscriptionID string) error {
	body, err := json.Marshal(models.SubscriptionRequest{
		SubscriptionID: subscriptionID,
		RecordType:     models.NoteRecordType,
	})
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}

	resp, err := h.signedRequest(ctx, body).Post("/api/subscriptions")
	if err != nil {
		return mapTransportError("subscribe request", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRecordStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpRecordStore) signedRequest(ctx context.Context, body []byte) *resty.Request {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hashKey != "" {
		req.SetHeader(HashHeader, utils.SignBody(body))
	}
	return req
}
