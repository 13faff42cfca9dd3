package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/utils"
)

// HashHeader carries the hex HMAC-SHA256 of the raw request body.
const HashHeader = "HashSHA256"

// withHashCheck verifies the HashSHA256 header against the raw body. It is a
// no-op when no hash key is configured. utils.InitHasherPool must have been
// called with the same key.
func (h *Handler) withHashCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.HashKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		log.Debug().Str("func", "*Handler.withHashCheck").Msg("checking hash begins")

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withHashCheck").Msg("failed to read request body")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !utils.VerifyBody(body, r.Header.Get(HashHeader)) {
			log.Error().Str("func", "*Handler.withHashCheck").
				Str("hash_header", r.Header.Get(HashHeader)).
				Msg("body hash mismatch")
			http.Error(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
