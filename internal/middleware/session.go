package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/todo-web/internal/session"
)

type key string

const UserIDKey key = "user_id"

// UserResolver maps a request to the id of its authenticated user.
type UserResolver interface {
	UserID(ctx context.Context, r *http.Request) (int64, error)
}

// RequireSession gates protected routes. Requests without a live session are
// redirected to /login; store failures get a generic 500.
func RequireSession(sessions UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r.Context(), r)
			if err != nil {
				if errors.Is(err, session.ErrUnauthenticated) {
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				slog.ErrorContext(r.Context(), "resolve session", "path", r.URL.Path, "err", err)
				http.Error(w, "Something went wrong!", http.StatusInternalServerError)
				return
			}
			noteUser(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID returns the authenticated user id stored by RequireSession.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
