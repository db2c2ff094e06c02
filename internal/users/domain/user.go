package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail    = errors.New("email is required")
	ErrInvalidPassword = errors.New("password is required")
	ErrEmptyHash       = errors.New("password hash cannot be empty")
)

// User is an account record. PasswordHash is a bcrypt hash, never the
// plaintext password.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a user with a fresh ID.
func NewUser(email, passwordHash string) (*User, error) {
	if err := ValidateCredentials(email, "-"); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrEmptyHash
	}

	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ValidateCredentials checks that both registration fields are present.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrInvalidPassword
	}
	return nil
}
