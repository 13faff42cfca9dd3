package http

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	traceIDHeader    = "X-Trace-ID"
	maxTraceIDLength = 64
)

// withTraceID attaches a request-scoped logger carrying trace_id. A trace id
// sent by the client is reused when it looks sane, otherwise a new UUID is
// issued. The id is echoed in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = uuid.NewString()
		}

		l := h.logger.WithStr("trace_id", traceID)
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

// validTraceID accepts short ids of letters, digits, '-' and '_', so a
// client cannot inject arbitrary text into the logs.
func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
