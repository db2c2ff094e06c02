package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("ada@example.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	other, err := NewUser("bob@example.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, other.ID)
}

func TestNewUserRejectsMissingFields(t *testing.T) {
	_, err := NewUser("", "$2a$10$hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("ada@example.com", "")
	assert.ErrorIs(t, err, ErrEmptyHash)
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("a@b.c", "pw"))
	assert.ErrorIs(t, ValidateCredentials(" ", "pw"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateCredentials("a@b.c", ""), ErrInvalidPassword)
}
