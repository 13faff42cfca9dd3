// Package http implements the REST transport of the record service: chi
// routes, the record and auth handlers, and middleware for tracing, logging,
// compression, body signatures and bearer-token authentication.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/service"
	"github.com/MKhiriev/go-six-notes/internal/utils"
)

// auth admits requests carrying a valid bearer token of an account that may
// sync. The user id goes to the context under [utils.UserIDCtxKey] and to the
// request logger as user_id.
//
// Missing, malformed, expired or invalid tokens get 401. A restricted account
// gets 403, an unreachable user store 503 (see errorStatusTable).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		tokenString, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Send()
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		switch {
		case errors.Is(err, service.ErrTokenIsExpired):
			log.Err(err).Msg("token expired")
			http.Error(w, app.MsgTokenIsExpired, http.StatusUnauthorized)
			return
		case err != nil:
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		// restricted accounts may authenticate but not touch records
		if err = h.services.AuthService.CheckUserAllowed(ctx, token.UserID); err != nil {
			status := writeError(w, err)
			log.Err(err).Int64("user_id", token.UserID).Int("status", status).Msg("user is not allowed to sync")
			return
		}

		userLog := log.WithInt64("user_id", token.UserID)
		ctx = context.WithValue(userLog.WithContext(ctx), utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, token, ok := strings.Cut(strings.TrimLeft(header, " "), " ")
	if !ok {
		return "", ErrInvalidAuthorizationHeader
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrUnsupportedAuthScheme
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}
