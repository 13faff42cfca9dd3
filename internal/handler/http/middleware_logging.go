package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// withLogging writes one entry per request. Server errors are logged at
// error level, client errors at warn, the rest at info.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()
		uri, method := r.RequestURI, r.Method

		lw := newResponseWriter(w)
		next.ServeHTTP(lw, r)

		var event *zerolog.Event
		switch {
		case lw.status >= http.StatusInternalServerError:
			event = log.Error()
		case lw.status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size)

		// chi fills the shared route context while routing
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				event = event.Str("route", pattern)
			}
			if name := rctx.URLParam("name"); name != "" {
				event = event.Str("record_name", name)
			}
		}
		if text := lw.errorText(); text != "" {
			event = event.Str("error", text)
		}

		event.Send()
	})
}
