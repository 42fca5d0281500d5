// Package domain holds the core entities and the sentinel errors the rest
// of the application branches on.
package domain

import (
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenInvalid       = errors.New("verification token invalid")
	ErrTokenExpired       = errors.New("verification token expired")
)

// User is an account holder. The verification fields are nil once the
// account is verified or the pending token has been cleaned up.
type User struct {
	ID                       string
	Email                    string
	FirstName                string
	LastName                 string
	PasswordHash             string
	IsVerified               bool
	VerificationToken        *string
	VerificationTokenExpires *time.Time
	ProfileID                *string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
