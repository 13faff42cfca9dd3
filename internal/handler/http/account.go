package http

import (
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

// accountStatus answers without the auth middleware: a missing or bad token
// is a status (noAccount), not an error.
func (h *Handler) accountStatus(w http.ResponseWriter, r *http.Request) {
	var token string
	if header := r.Header.Get("Authorization"); header != "" {
		token, _ = bearerToken(header)
	}

	status := h.services.AuthService.AccountStatus(r.Context(), token)

	utils.WriteJSON(w, models.AccountStatusResponse{Status: status}, http.StatusOK)
}
