package http

import (
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/utils"
)

// getServerVersion answers with the bare version string, or with the full
// server description when the client asks for JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if hasToken(r.Header.Get("Accept"), "application/json") {
		utils.WriteJSON(w, h.services.AppInfoService.GetServerInfo(r.Context()), http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context())))
}
