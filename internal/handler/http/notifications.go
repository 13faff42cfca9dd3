package http

import (
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/utils"
)

func (h *Handler) notificationsStream(w http.ResponseWriter, r *http.Request) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Error().Str("func", "*Handler.notificationsStream").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}
	if h.notifications == nil {
		http.NotFound(w, r)
		return
	}

	h.notifications.ServeUser(w, r, userID)
}
