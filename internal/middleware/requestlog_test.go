package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/todo-web/internal/session"
)

// captureLog swaps the default logger for a JSON one writing into a buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var out map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &out); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return out
}

func TestRequestLog_IncludesSessionUser(t *testing.T) {
	buf := captureLog(t)
	h := RequestLog(RequireSession(stubResolver{id: 42})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	line := lastLine(t, buf)
	if line["user_id"] != float64(42) {
		t.Errorf("user_id: got %v, want 42", line["user_id"])
	}
	if line["path"] != "/dashboard" || line["status"] != float64(200) || line["size"] != float64(2) {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestRequestLog_AnonymousRedirect(t *testing.T) {
	buf := captureLog(t)
	h := RequestLog(RequireSession(stubResolver{err: session.ErrUnauthenticated})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run")
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	line := lastLine(t, buf)
	if _, ok := line["user_id"]; ok {
		t.Errorf("user_id must be absent without a session: %v", line)
	}
	if line["redirect"] != "/login" || line["status"] != float64(302) {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestRouteLabel(t *testing.T) {
	var label string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			label = routeLabel(req)
		})
	})
	r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if label != "/static/*" {
		t.Errorf("matched route: got %q, want /static/*", label)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin", nil))
	if label != "/wp-admin" {
		t.Errorf("unmatched route: got %q, want raw path", label)
	}
}
