package password_test

import (
	"testing"

	"github.com/philly/quillpost/internal/platform/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasherRejectsOutOfRangeCost(t *testing.T) {
	_, err := password.NewHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = password.NewHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)

	h, err := password.NewHasher(password.DefaultCost)
	require.NoError(t, err)
	assert.Equal(t, 10, h.Cost())
}

func TestHashAndCompare(t *testing.T) {
	h, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.ErrorIs(t, h.Compare(hash, "s3cret!"), password.ErrMismatch)
}

func TestHashIsSalted(t *testing.T) {
	h, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCompareMalformedHash(t *testing.T) {
	h, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	err = h.Compare("not-a-bcrypt-hash", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrMismatch)
}
