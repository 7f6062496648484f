package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

type accessKey struct{}

// access collects fields that inner handlers learn after RequestLog has
// already handed the request on, such as who the session belongs to.
type access struct {
	userID int64
}

// noteUser records the authenticated user on the request's access log line.
func noteUser(ctx context.Context, userID int64) {
	if a, ok := ctx.Value(accessKey{}).(*access); ok {
		a.userID = userID
	}
}

// RequestLog logs each request with request_id, method, path, status, duration and size,
// plus user_id once the session guard has resolved one and the target of any redirect.
// Use after RequestID middleware so the ID is available. Form bodies are never logged.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		acc := &access{}
		wrap := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrap, r.WithContext(context.WithValue(r.Context(), accessKey{}, acc)))

		attrs := []any{
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrap.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"size", wrap.size,
		}
		if acc.userID != 0 {
			attrs = append(attrs, "user_id", acc.userID)
		}
		if wrap.status >= 300 && wrap.status < 400 {
			attrs = append(attrs, "redirect", wrap.Header().Get("Location"))
		}
		slog.Info("request", attrs...)
	})
}
