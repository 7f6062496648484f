package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation reports a missing or empty required field.
	ErrValidation = errors.New("validation error")
	// ErrPasswordTooLong reports a password bcrypt cannot hash in full. It
	// matches ErrValidation as well.
	ErrPasswordTooLong = fmt.Errorf("%w: password longer than %d bytes", ErrValidation, MaxPasswordBytes)
	// ErrDuplicateUser reports a username that is already registered.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound reports an unknown username in the reset flow.
	ErrUserNotFound = errors.New("user not found")
)
