// Package session maps an opaque cookie token to a server-side session record
// holding the authenticated user id and an absolute expiry.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthenticated is returned when a request carries no valid, live session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound is returned by a Store when the token is unknown.
	ErrNotFound = errors.New("session not found")
)

// Session is the server-side record behind a session cookie.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its absolute expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists session records.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	// Purge drops sessions expired at now and returns how many were removed.
	Purge(ctx context.Context, now time.Time) (int, error)
	Close() error
}
