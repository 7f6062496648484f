package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "todo_session"

// DefaultTTL is the absolute lifetime of a session.
const DefaultTTL = 24 * time.Hour

// Manager issues and resolves session cookies. The cookie value is an HS256
// token whose ID claim is the server-side session token; the record in the
// Store is the source of truth, so deleting it revokes the cookie.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecureCookie marks the cookie Secure (HTTPS only).
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, secret []byte, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{store: store, secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session for userID and sets the cookie on w. A session
// already carried by r is dropped first so a login never reuses a prior token.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) error {
	if old, err := m.sessionID(r, false); err == nil {
		_ = m.store.Delete(ctx, old)
	}

	now := m.now()
	s := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        s.Token,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// UserID resolves the request's session to a user id. It returns
// ErrUnauthenticated for a missing, forged, unknown or expired session and a
// wrapped error when the store itself fails.
func (m *Manager) UserID(ctx context.Context, r *http.Request) (int64, error) {
	sid, err := m.sessionID(r, true)
	if err != nil {
		return 0, ErrUnauthenticated
	}

	s, err := m.store.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, fmt.Errorf("load session: %w", err)
	}

	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, sid)
		return 0, ErrUnauthenticated
	}
	return s.UserID, nil
}

// Destroy removes the request's session from the store and clears the cookie.
// The cookie is cleared even when the store delete fails.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	sid, err := m.sessionID(r, false)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Purge drops expired sessions from the store.
func (m *Manager) Purge(ctx context.Context) (int, error) {
	return m.store.Purge(ctx, m.now())
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// sessionID extracts the session token from the signed cookie. When validate
// is false, expiry is not checked so an expired cookie can still be revoked.
func (m *Manager) sessionID(r *http.Request, validate bool) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if !validate {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrUnauthenticated
	}
	return claims.ID, nil
}
