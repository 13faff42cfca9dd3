package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
)

// credentialStep is RegisterUser or Login: it turns submitted credentials
// into a stored user.
type credentialStep func(ctx context.Context, user models.User) (models.User, error)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	h.issueToken(w, r, "register", h.services.AuthService.RegisterUser, app.MsgRegistrationFailed)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	h.issueToken(w, r, "login", h.services.AuthService.Login, app.MsgLoginFailed)
}

// issueToken decodes the credentials, runs step and answers 200 with
// "Authorization: Bearer <jwt>" and an empty body.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, op string, step credentialStep, tokenFailedMsg string) {
	ctx := r.Context()
	log := logger.FromRequest(r).With().Str("op", op).Logger()

	var credentials models.User
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Warn().Err(err).Msg("credentials are not valid JSON")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, err := step(ctx, credentials)
	if err != nil {
		status := writeError(w, err)
		log.Err(err).Int("status", status).Str("login", credentials.Login).Msg("authentication failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("token was not issued")
		http.Error(w, tokenFailedMsg, http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("token issued")
	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	w.WriteHeader(http.StatusOK)
}
