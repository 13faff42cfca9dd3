package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listRecords").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		limit = min(n, maxPageSize)
	}

	page, err := h.services.RecordService.ListRecords(ctx, userID, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		status := writeError(w, err)
		log.Err(err).Str("func", "*Handler.listRecords").Int("status", status).Msg("listing records failed")
		return
	}
	if page.Records == nil {
		page.Records = []models.NoteRecord{}
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getRecord").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.GetRecord(ctx, userID, chi.URLParam(r, "name"))
	if err != nil {
		status := writeError(w, err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.getRecord").Int("status", status).Msg("getting record failed")
		}
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

// saveRecord answers 409 with the current server record as the body so the
// client can merge without another round trip.
func (h *Handler) saveRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.saveRecord").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var record models.NoteRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Str("func", "*Handler.saveRecord").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	name := chi.URLParam(r, "name")
	if record.RecordName != "" && record.RecordName != name {
		http.Error(w, app.MsgInvalidRecordName, http.StatusBadRequest)
		return
	}
	record.RecordName = name

	saved, err := h.services.RecordService.SaveRecord(ctx, userID, record)
	if err != nil {
		var conflict *store.VersionConflictError
		if errors.As(err, &conflict) {
			utils.WriteJSON(w, conflict.Current, http.StatusConflict)
			return
		}
		status := writeError(w, err)
		log.Err(err).Str("func", "*Handler.saveRecord").Int("status", status).Msg("saving record failed")
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.subscribe").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var req models.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.subscribe").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.Subscribe(ctx, userID, req); err != nil {
		status := writeError(w, err)
		log.Err(err).Str("func", "*Handler.subscribe").Int("status", status).Msg("subscription failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
