package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crucial707/todo-web/internal/metrics"
	"github.com/crucial707/todo-web/internal/repo"
)

// AuthService registers users and checks or replaces their passwords.
type AuthService struct {
	users  *repo.UserRepo
	hasher *PasswordHasher
	log    *slog.Logger

	// dummyHash is checked when the username is unknown so a miss costs the
	// same bcrypt work as a wrong password.
	dummyHash string
}

// NewAuthService fails if the hasher cannot produce the dummy hash checked on
// unknown-user logins.
func NewAuthService(users *repo.UserRepo, hasher *PasswordHasher, log *slog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &AuthService{users: users, hasher: hasher, log: log, dummyHash: dummy}, nil
}

// Register creates a user and returns its id.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, ErrValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			metrics.RecordAuthEvent("register", "duplicate")
			return 0, ErrDuplicateUser
		}
		metrics.RecordAuthEvent("register", "error")
		return 0, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordAuthEvent("register", "ok")
	s.log.InfoContext(ctx, "user registered", "user_id", id)
	return id, nil
}

// Login returns the id of the user whose stored hash matches password.
func (s *AuthService) Login(ctx context.Context, username, password string) (int64, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			metrics.RecordAuthEvent("login", "invalid")
			return 0, ErrInvalidCredentials
		}
		metrics.RecordAuthEvent("login", "error")
		return 0, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.RecordAuthEvent("login", "invalid")
		return 0, ErrInvalidCredentials
	}

	metrics.RecordAuthEvent("login", "ok")
	return user.ID, nil
}

// ChangePassword replaces the hash for userID after checking oldPassword.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrValidation
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		metrics.RecordAuthEvent("change_password", "invalid")
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	metrics.RecordAuthEvent("change_password", "ok")
	s.log.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

// ResetPassword overwrites the hash for username without any proof that the
// caller owns the account. This mirrors the forgot-password form as shipped
// and is only suitable for demo deployments.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if username == "" || newPassword == "" {
		return ErrValidation
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePasswordByUsername(ctx, username, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.RecordAuthEvent("reset_password", "not_found")
			return ErrUserNotFound
		}
		return fmt.Errorf("reset password: %w", err)
	}

	metrics.RecordAuthEvent("reset_password", "ok")
	s.log.WarnContext(ctx, "password reset without verification", "username", username)
	return nil
}
