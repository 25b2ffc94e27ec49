package middleware

import (
	"net/http"
)

// NewMaxBodySizeHandler rejects request bodies larger than limit bytes.
// A declared Content-Length over the limit is refused with 413 before the
// next handler runs; bodies of unknown length are wrapped in
// http.MaxBytesReader so the decode fails once the limit is crossed.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
