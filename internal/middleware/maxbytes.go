package middleware

import (
	"net/http"
)

// DefaultMaxFormBytes caps a form post body (1 MiB); the largest legitimate
// form here is a task description.
const DefaultMaxFormBytes = 1 << 20

// MaxBytes limits the request body size on methods that carry a body. An
// oversized form fails in ParseForm and the handler answers 400.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFormBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Method != http.MethodGet && r.Method != http.MethodHead {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
