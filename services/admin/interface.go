package admin

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUnauthorized       = errors.New("admin session is missing or expired")
	ErrPasswordEmpty      = errors.New("password must not be empty")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// CredentialVerifier checks an admin login attempt.
type CredentialVerifier interface {
	Verify(ctx context.Context, password string) (bool, error)
}

// PasswordChanger replaces the admin password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, newPassword, confirmPassword string) error
}

// Session is an issued admin token.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
