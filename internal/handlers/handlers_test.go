package handlers

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/todo-web/internal/db"
	"github.com/crucial707/todo-web/internal/middleware"
	"github.com/crucial707/todo-web/internal/repo"
	"github.com/crucial707/todo-web/internal/service"
	"github.com/crucial707/todo-web/internal/session"
)

type testApp struct {
	auth     *AuthHandler
	tasks    *TaskHandler
	svc      *service.AuthService
	sessions *session.Manager
	db       *sql.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "todo.db"), 4, 4)
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(context.Background(), conn); err != nil {
		t.Fatalf("db.Migrate: %v", err)
	}

	views, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authSvc, err := service.NewAuthService(repo.NewUserRepo(conn), service.NewPasswordHasher(), log)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	sessions := session.NewManager(session.NewMemoryStore(), []byte("test-secret"), session.DefaultTTL)

	return &testApp{
		auth:     &AuthHandler{Auth: authSvc, Sessions: sessions, Views: views},
		tasks:    &TaskHandler{Tasks: service.NewTaskService(repo.NewTaskRepo(conn), log), Views: views},
		svc:      authSvc,
		sessions: sessions,
		db:       conn,
	}
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rr.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != want {
		t.Errorf("Location: got %q, want %q", got, want)
	}
}

func assertBodyContains(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	if !strings.Contains(rr.Body.String(), want) {
		t.Errorf("body does not contain %q:\n%s", want, rr.Body.String())
	}
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", session.CookieName)
	return nil
}

func (a *testApp) register(t *testing.T, username, password string) int64 {
	t.Helper()
	id, err := a.svc.Register(context.Background(), username, password)
	if err != nil {
		t.Fatalf("Register(%q): %v", username, err)
	}
	return id
}
