package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip decodes gzip request bodies and compresses responses for clients
// that accept gzip. Record lists are JSON and compress well.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasToken(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			body, err := newGzipBody(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			r.Body = body
			r.Header.Del("Content-Encoding")
		}

		if !hasToken(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		gw := &gzipResponseWriter{ResponseWriter: w, zw: zw}

		next.ServeHTTP(gw, r)

		if gw.compressing {
			_ = zw.Close()
		}
		gzipWriters.Put(zw)
	})
}

// hasToken reports whether a comma separated header value lists token,
// ignoring quality parameters.
func hasToken(header, token string) bool {
	for part := range strings.SplitSeq(header, ",") {
		name, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(name), token) {
			return true
		}
	}
	return false
}

// gzipBody returns its reader to the pool on Close.
type gzipBody struct {
	zr   *gzip.Reader
	orig io.ReadCloser
}

func newGzipBody(body io.ReadCloser) (*gzipBody, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(body); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}
	return &gzipBody{zr: zr, orig: body}, nil
}

func (b *gzipBody) Read(p []byte) (int, error) {
	if b.zr == nil {
		return 0, io.ErrClosedPipe
	}
	return b.zr.Read(p)
}

func (b *gzipBody) Close() error {
	if b.zr != nil {
		_ = b.zr.Close()
		gzipReaders.Put(b.zr)
		b.zr = nil
	}
	return b.orig.Close()
}

type gzipResponseWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
	compressing bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	// bodiless responses stay as they are
	if statusCode != http.StatusNoContent && statusCode != http.StatusNotModified {
		w.compressing = true
		h := w.Header()
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if !w.compressing {
		return w.ResponseWriter.Write(data)
	}
	return w.zw.Write(data)
}
