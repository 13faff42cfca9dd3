// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bufio"
	"net"
	"net/http"
)

// maxLoggedErrorBody bounds the part of an error response kept for the
// request log.
const maxLoggedErrorBody = 256

// responseWriter records what the handler wrote: the status, the body size
// and, for 4xx/5xx responses, the start of the body. Error bodies are the
// plain app.Msg* texts, so they make a readable "error" log field.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
	errBody     []byte
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

// WriteHeader forwards only the first status.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n

	if w.status >= http.StatusBadRequest && len(w.errBody) < maxLoggedErrorBody {
		room := maxLoggedErrorBody - len(w.errBody)
		w.errBody = append(w.errBody, b[:min(n, room)]...)
	}
	return n, err
}

// errorText returns the captured error body without the trailing newline
// that http.Error appends.
func (w *responseWriter) errorText() string {
	text := string(w.errBody)
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text
}

// Unwrap exposes the underlying writer to [http.ResponseController], which
// the websocket upgrade uses to hijack the connection.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack lets the notification stream take over the connection through the
// logging middleware.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackNotSupported
	}
	w.status = http.StatusSwitchingProtocols
	w.wroteHeader = true
	return hj.Hijack()
}
