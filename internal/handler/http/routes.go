package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// REST: gzip and a per-request timeout
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		if h.opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.opts.RequestTimeout))
		}

		// routes without authorization
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/account/status", h.accountStatus)
		r.Get("/api/version/", h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/records", h.listRecords)
			r.Get("/api/records/{name}", h.getRecord)
			r.With(h.withHashCheck).Put("/api/records/{name}", h.saveRecord)
			r.With(h.withHashCheck).Post("/api/subscriptions", h.subscribe)
		})
	})

	// long-lived websocket: no gzip, no timeout
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/notifications", h.notificationsStream)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
